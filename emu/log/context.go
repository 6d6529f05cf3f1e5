package log

import "sync"

// A ContextAdder contributes fields to every log entry, for as long as it is
// registered. The CPU uses it to tag entries with the current PC.
type ContextAdder interface {
	AddLogContext(z *EntryZ)
}

var (
	ctxmu    sync.RWMutex
	contexts []ContextAdder
)

// AddContext registers c.
func AddContext(c ContextAdder) {
	ctxmu.Lock()
	contexts = append(contexts, c)
	ctxmu.Unlock()
}

// RemoveContext unregisters c.
func RemoveContext(c ContextAdder) {
	ctxmu.Lock()
	defer ctxmu.Unlock()

	for i := range contexts {
		if contexts[i] == c {
			contexts = append(contexts[:i], contexts[i+1:]...)
			return
		}
	}
}

func addContexts(z *EntryZ) {
	ctxmu.RLock()
	defer ctxmu.RUnlock()

	for _, c := range contexts {
		c.AddLogContext(z)
	}
}
