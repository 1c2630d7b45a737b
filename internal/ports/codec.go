package ports

import "github.com/bnema/plza-save-editor/internal/domain"

// Codec turns an encrypted save blob into a container and back. Both directions
// may be CPU heavy and are run through an Offloader.
type Codec interface {
	Decode(data []byte) (*domain.Container, error)
	Encode(container *domain.Container) ([]byte, error)
}
