package lisp

// Option configures a Runtime.
type Option func(*Runtime)

// WithHistory enables SQLite-backed line history at the given path.
func WithHistory(path string) Option {
	return func(r *Runtime) { r.historyPath = path }
}

// WithNoPrelude skips loading DefaultPrelude.
func WithNoPrelude() Option {
	return func(r *Runtime) { r.noPrelude = true }
}

// WithPrelude sets a custom prelude source, loaded in place of
// DefaultPrelude.
func WithPrelude(source string) Option {
	return func(r *Runtime) { r.prelude = source }
}
