package tasks

import (
	"log"
	"sync"
	"time"

	"socialite-server/db"
)

// Scheduler runs deferred post publication outside the request cycle.
// Each scheduled post gets a timer; when it fires, the post is re-fetched
// by id and its published flag is set unconditionally, so running the task
// more than once is harmless. There is no un-schedule path.
type Scheduler struct {
	posts db.PostStore

	mu     sync.Mutex
	timers map[string]*time.Timer
	active int
}

func NewScheduler(posts db.PostStore) *Scheduler {
	return &Scheduler{
		posts:  posts,
		timers: map[string]*time.Timer{},
	}
}

func (s *Scheduler) Schedule(postId string, at time.Time) {
	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[postId]; ok {
		existing.Stop()
	}

	s.timers[postId] = time.AfterFunc(delay, func() {
		s.publish(postId)
	})

	log.Printf("scheduled publication of post %s in %s", postId, delay)
}

func (s *Scheduler) publish(postId string) {
	s.mu.Lock()
	delete(s.timers, postId)
	s.active++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.active--
		s.mu.Unlock()
	}()

	err := s.posts.SetPublished(postId)

	if err != nil {
		// surfaced in logs only; publication is fire-and-forget for clients
		log.Printf("error publishing scheduled post %s: %v", postId, err)
		return
	}

	log.Printf("published scheduled post %s", postId)
}

// RearmPending re-schedules unpublished posts that still have a schedule
// time. Called once at startup so pending publications survive restarts.
func (s *Scheduler) RearmPending() error {
	posts, err := s.posts.ListPendingScheduled()
	if err != nil {
		return err
	}

	for _, post := range posts {
		if post.ScheduleTime == nil {
			continue
		}
		s.Schedule(post.Id, *post.ScheduleTime)
	}

	if len(posts) > 0 {
		log.Printf("re-armed %d pending scheduled posts", len(posts))
	}

	return nil
}

// NumActivePublishes reports in-flight publication tasks, for graceful
// shutdown draining.
func (s *Scheduler) NumActivePublishes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
