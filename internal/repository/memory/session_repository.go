package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"ai-blogcms-be/pkg/editor"
)

// SessionRepository stores live edit sessions in process memory. Sessions
// idle for over an hour are evicted; the working document lives on the post
// draft, so an evicted session only loses chat history.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *editor.Session) {
	r.cache.Set(session.ID().String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*editor.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		// Touch the entry so active sessions do not expire mid-conversation.
		r.cache.Set(sessionID, x, cache.DefaultExpiration)
		return x.(*editor.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
