package platform

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutexSectionSerializes(t *testing.T) {
	var s MutexSection
	counter := 0

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 1000; n++ {
				s.Enter()
				counter++
				s.Exit()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8000, counter)
}

func TestNopSection(t *testing.T) {
	var s Section = NopSection{}
	s.Enter()
	s.Exit()
}

func TestDefaultFatalPanics(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		DefaultFatal("boom")
	})
}
