package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sksingtn/trackr-backend/internal/model"
)

var errNoBearerToken = errors.New("missing bearer token")

// AdminLookup is the slice of admin storage the bearer provider needs.
type AdminLookup interface {
	GetByUUID(ctx context.Context, adminUUID uuid.UUID) (*model.AdminProfile, error)
}

// BearerIdentity resolves "Authorization: Bearer <uuid>" to an admin
// profile. It stands in for a full session layer.
type BearerIdentity struct {
	admins AdminLookup
}

func NewBearerIdentity(admins AdminLookup) *BearerIdentity {
	return &BearerIdentity{admins: admins}
}

func (p *BearerIdentity) ResolveAdmin(ctx context.Context, r *http.Request) (*model.AdminProfile, error) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, errNoBearerToken
	}

	adminUUID, err := uuid.Parse(strings.TrimSpace(token))
	if err != nil {
		return nil, errNoBearerToken
	}

	return p.admins.GetByUUID(ctx, adminUUID)
}
