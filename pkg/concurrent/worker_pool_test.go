package concurrent

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPoolProcessesEveryJob(t *testing.T) {
	const n = 200
	wp := NewWorkerPool[int, int](4, n)
	wp.Start(func(job int) int {
		return job * job
	})

	for i := 0; i < n; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	got := make([]int, 0, n)
	for res := range wp.CollectResults() {
		got = append(got, res)
	}
	sort.Ints(got)

	assert.Len(t, got, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, i*i, got[i])
	}
}

func TestWorkerPoolClampsWorkers(t *testing.T) {
	wp := NewWorkerPool[string, int](0, 1)
	wp.Start(func(job string) int { return len(job) })
	wp.AddJob("flood")
	wp.Close()
	wp.Wait()

	assert.Equal(t, 5, <-wp.CollectResults())
}
