package attendance

import (
	"context"
	"errors"
	"fmt"
)

// LoadCatalog lists the attendance types of repo as a Catalog.
func LoadCatalog(ctx context.Context, repo AttendanceTypeRepository) (Catalog, error) {
	types, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance types: %w", err)
	}
	return NewCatalog(types), nil
}

// JoinWithReload joins records to catalog. When a record references a type the
// catalog does not know and repo is a CatalogRefresher, the catalog is refreshed
// once and the join retried. The returned catalog is the one the records were
// joined against.
func JoinWithReload(ctx context.Context, repo AttendanceTypeRepository, catalog Catalog, records []UsedAttendance) (Catalog, []UsedAttendance, error) {
	joined, err := catalog.Join(records)
	if err == nil || !errors.Is(err, ErrUnknownAttendanceType) {
		return catalog, joined, err
	}

	refresher, ok := repo.(CatalogRefresher)
	if !ok {
		return catalog, nil, err
	}
	types, refreshErr := refresher.Refresh(ctx)
	if refreshErr != nil {
		return catalog, nil, fmt.Errorf("failed to refresh attendance types: %w", refreshErr)
	}

	catalog = NewCatalog(types)
	joined, err = catalog.Join(records)
	return catalog, joined, err
}
