// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"io"

	"gokutrace/internal/core/domain"
)

// WriteJSON serializa el ResultSet en forma compacta, con el layout de su modo.
func WriteJSON(w io.Writer, rs domain.ResultSet) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(rs)
}
