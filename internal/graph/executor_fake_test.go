package graph

import (
	"context"
	"strings"
	"sync"
)

// fakeExecutor scripts responses per call in order and records every
// statement it ran.
type fakeExecutor struct {
	mu      sync.Mutex
	replies []fakeReply
	calls   []fakeCall
}

type fakeReply struct {
	rows []map[string]any
	err  error
}

type fakeCall struct {
	cypher string
	params map[string]any
}

func (f *fakeExecutor) Run(_ context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fakeCall{cypher: cypher, params: params})
	if len(f.replies) == 0 {
		return nil, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply.rows, reply.err
}

func (f *fakeExecutor) reply(rows []map[string]any, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, fakeReply{rows: rows, err: err})
}

func (f *fakeExecutor) lastCall() fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return fakeCall{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeExecutor) ranStatement(fragment string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if strings.Contains(c.cypher, fragment) {
			return true
		}
	}
	return false
}

func oneRow(key string, value any) []map[string]any {
	return []map[string]any{{key: value}}
}
