package device

// Null is a /dev/null-equivalent character device: reads report clean EOF,
// writes discard everything and report full success. Wired into every
// process's descriptor slot 3 as the default discard sink for whatever a
// task writes past its keyboard/console/console trio (spec.md §4.4 seeds
// only slots 0-2 by name; slot 3 is otherwise unused, so it gets Null
// rather than sitting empty).
type Null struct{}

func (Null) Name() string { return "null" }

func (Null) Read(buf []byte) (int, error) { return 0, nil }

func (Null) Write(buf []byte) (int, error) { return len(buf), nil }
