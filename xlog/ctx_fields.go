package xlog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ftcontainers/xstl/lib/container"
)

// contextFields maps context value keys to log field names. The keys
// are kept ordered so the extracted fields come out in a stable order.
type contextFields struct {
	mu     sync.RWMutex
	fields *container.Map[string, string]
}

func newContextFields() *contextFields {
	return &contextFields{
		fields: container.NewMap[string, string](),
	}
}

func (cf *contextFields) addOrUpdate(key, mapTo string) error {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	_, _, err := cf.fields.InsertOrAssign(key, mapTo)
	return err
}

func (cf *contextFields) len() int64 {
	cf.mu.RLock()
	defer cf.mu.RUnlock()
	return cf.fields.Len()
}

func (cf *contextFields) extract(ctx context.Context) []zap.Field {
	if ctx == nil || cf == nil {
		return []zap.Field{}
	}

	cf.mu.RLock()
	defer cf.mu.RUnlock()
	newFields := make([]zap.Field, 0, cf.fields.Len())
	for key, mapTo := range cf.fields.All() {
		if mapTo == ContextKeyMapToOmitempty {
			continue
		}
		if v := ctx.Value(key); v == nil {
			newFields = append(newFields, zap.String(mapTo, "nil"))
		} else {
			newFields = append(newFields, zap.Any(mapTo, v))
		}
	}
	return newFields
}
