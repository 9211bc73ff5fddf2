// internal/testutil/server.go
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"gokutrace/internal/core/domain"
)

// profile es la respuesta registrada para un path.
type profile struct {
	status int
	body   string
}

// ProfileServer simula un conjunto de plataformas de perfiles: cada
// plataforma vive bajo /<name>/ y los perfiles no registrados dan 404.
type ProfileServer struct {
	*httptest.Server

	mu       sync.Mutex
	profiles map[string]profile
	hits     map[string]int
}

// NewProfileServer arranca el servidor y lo cierra al terminar el test.
func NewProfileServer(t *testing.T) *ProfileServer {
	t.Helper()

	ps := &ProfileServer{
		profiles: make(map[string]profile),
		hits:     make(map[string]int),
	}
	ps.Server = httptest.NewServer(http.HandlerFunc(ps.serve))
	t.Cleanup(ps.Close)
	return ps
}

func (ps *ProfileServer) serve(w http.ResponseWriter, r *http.Request) {
	ps.mu.Lock()
	ps.hits[r.URL.Path]++
	p, ok := ps.profiles[r.URL.Path]
	ps.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(p.status)
	_, _ = w.Write([]byte(p.body))
}

// Profile registra la respuesta de handle en la plataforma name.
func (ps *ProfileServer) Profile(name, handle string, status int, body string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.profiles["/"+strings.ToLower(name)+"/"+handle] = profile{status: status, body: body}
}

// Platform retorna una plataforma cuya plantilla apunta al servidor.
func (ps *ProfileServer) Platform(name string) domain.Platform {
	return domain.Platform{
		Name:        name,
		URLTemplate: ps.URL + "/" + strings.ToLower(name) + "/{}",
	}
}

// Hits retorna cuántas peticiones recibió handle en la plataforma name.
func (ps *ProfileServer) Hits(name, handle string) int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.hits["/"+strings.ToLower(name)+"/"+handle]
}

// TotalHits retorna el total de peticiones recibidas.
func (ps *ProfileServer) TotalHits() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	total := 0
	for _, n := range ps.hits {
		total += n
	}
	return total
}
