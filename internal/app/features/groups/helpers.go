package groups

import "github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"

func isNotFound(err error) bool {
	return apierr.Is(err, apierr.KindNotFound)
}
