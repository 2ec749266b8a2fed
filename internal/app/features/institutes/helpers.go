package institutes

import (
	"errors"

	institutestore "github.com/YatharthSanghavi/wt-project/internal/app/store/institutes"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
)

// translate maps store sentinels to client errors. A duplicate that slipped
// past the pre-check is caught by the unique index.
func translate(err error) error {
	if errors.Is(err, institutestore.ErrDuplicateInstitute) {
		return apierr.Wrap(apierr.KindConflict, msgDuplicate, err)
	}
	return err
}
