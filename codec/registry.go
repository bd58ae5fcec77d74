package codec

import (
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"

	"github.com/reoring/aclmsg"
)

// Registry maps codec names and content types to codecs. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]aclmsg.Codec
	byMedia map[string]aclmsg.Codec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]aclmsg.Codec{}, byMedia: map[string]aclmsg.Codec{}}
}

// Register adds c under its name, its content type and any extra media type
// aliases. Later registrations replace earlier ones.
func (r *Registry) Register(c aclmsg.Codec, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[strings.ToLower(c.Name())] = c
	for _, mt := range append([]string{c.ContentType()}, aliases...) {
		r.byMedia[strings.ToLower(mt)] = c
	}
}

// Lookup finds a codec by name ("json", "yaml", "msgpack").
func (r *Registry) Lookup(name string) (aclmsg.Codec, error) {
	r.mu.RLock()
	c, ok := r.byName[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("codec: unknown codec %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return c, nil
}

// ForContentType finds a codec by media type. Parameters such as charset are
// ignored.
func (r *Registry) ForContentType(ct string) (aclmsg.Codec, error) {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, fmt.Errorf("codec: content type %q: %w", ct, err)
	}
	r.mu.RLock()
	c, ok := r.byMedia[mt]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("codec: unsupported content type %q", mt)
	}
	return c, nil
}

// Names lists the registered codec names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Default holds the built-in codecs.
var Default = func() *Registry {
	r := NewRegistry()
	r.Register(JSON{})
	r.Register(YAML{}, "application/x-yaml", "text/yaml")
	r.Register(MsgPack{}, "application/x-msgpack", "application/vnd.msgpack")
	return r
}()

// Lookup finds a built-in codec by name.
func Lookup(name string) (aclmsg.Codec, error) { return Default.Lookup(name) }

// ForContentType finds a built-in codec by media type.
func ForContentType(ct string) (aclmsg.Codec, error) { return Default.ForContentType(ct) }
