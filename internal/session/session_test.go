package session_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/licitavision/placsp-connector/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestSetURLsOverwritesWholesale(t *testing.T) {
	s := session.New()
	s.SetURLs([]string{"https://a", "https://b"})
	s.SetURLs([]string{"https://c"})

	assert.Equal(t, []string{"https://c"}, s.URLs())
	assert.True(t, s.HasURLs())
}

func TestURLsReturnsCopy(t *testing.T) {
	s := session.New()
	s.SetURLs([]string{"https://a"})

	got := s.URLs()
	got[0] = "mutated"
	assert.Equal(t, []string{"https://a"}, s.URLs())
}

func TestCPVOverwritePerURL(t *testing.T) {
	s := session.New()
	assert.False(t, s.HasCPVs())

	s.SetCPV("https://a", "45000000 obras")
	s.SetCPV("https://a", "45233140 carreteras")

	assert.Equal(t, map[string]string{"https://a": "45233140 carreteras"}, s.CPVs())
	assert.True(t, s.HasCPVs())
}

func TestResetCPVs(t *testing.T) {
	s := session.New()
	s.SetCPV("https://a", "45000000")
	s.ResetCPVs()
	assert.False(t, s.HasCPVs())
}

func TestConcurrentWrites(t *testing.T) {
	s := session.New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			url := fmt.Sprintf("https://notice/%d", n)
			s.SetCPV(url, "45000000")
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.CPVs(), 50)
}
