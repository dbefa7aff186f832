package cleanup

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Job struct {
	Name string
	F    func() error
}

var (
	mu   sync.Mutex
	jobs []*Job
)

func Register(j *Job) {
	mu.Lock()
	defer mu.Unlock()
	jobs = append(jobs, j)
}

// CleanUp runs registered jobs once, last registered first, so that a
// resource is released after everything built on top of it.
func CleanUp() {
	mu.Lock()
	pending := jobs
	jobs = nil
	mu.Unlock()
	for i := len(pending) - 1; i >= 0; i-- {
		j := pending[i]
		log.Info().Str("job", j.Name).Msg("cleanup job started")
		if err := j.F(); err != nil {
			log.Error().Err(err).Str("job", j.Name).Msg("cleanup job finished with error")
			continue
		}
		log.Info().Str("job", j.Name).Msg("cleaned")
	}
}
