// Package proof stores bank-transfer proof images submitted with funding
// requests. The stored reference is kept on the funding transaction so admins
// can review the image during arbitration.
package proof

import (
	"context"
	"io"
)

// Store persists proof images and returns a stable reference for later review.
type Store interface {
	Save(ctx context.Context, ownerID, filename string, r io.Reader) (ref string, err error)
}
