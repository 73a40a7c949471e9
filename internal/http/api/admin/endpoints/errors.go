package endpoints

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/db"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api"
)

// storeError maps a store failure to the response the original backend gave for it.
func storeError(err error, notFound string) *api.APIError {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return api.NotFound(notFound)
	case errors.Is(err, db.ErrDuplicate):
		return api.BadRequest("record already exists")
	case errors.Is(err, db.ErrInUse):
		return api.BadRequest("record is still referenced")
	}
	log.Error().Err(err).Msg("[store] unexpected failure")
	return api.Internal("internal server error")
}
