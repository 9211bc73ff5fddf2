package httpclient

import "math/rand/v2"

// defaultUserAgents is the rotation pool used when Config.UserAgents is empty.
// Rotation only blurs trivial fingerprinting; it is not a security control.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1 Mobile/15E148 Safari/604.1",
}

// DefaultUserAgents returns a copy of the built-in pool.
func DefaultUserAgents() []string {
	out := make([]string, len(defaultUserAgents))
	copy(out, defaultUserAgents)
	return out
}

// pick returns a uniformly random element. pool must not be empty.
func pick[T any](pool []T) T {
	return pool[rand.IntN(len(pool))]
}
