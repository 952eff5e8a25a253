package directory

import "github.com/ecomove/routeplanner/pkg/datastructure"

// InMemory is the directory used by the interactive planner and tests: the
// same lookups as Directory without the badger store.
type InMemory struct {
	byCode  map[string]datastructure.Location
	byID    map[int32]string
	parking []string
}

func NewInMemory(locations []datastructure.Location) *InMemory {
	d := &InMemory{
		byCode:  make(map[string]datastructure.Location, len(locations)),
		byID:    make(map[int32]string, len(locations)),
		parking: make([]string, 0),
	}
	for _, loc := range locations {
		d.byCode[loc.Code] = loc
		d.byID[loc.ID] = loc.Code
		if loc.HasParking {
			d.parking = append(d.parking, loc.Code)
		}
	}
	return d
}

func (d *InMemory) GetByCode(code string) (datastructure.Location, error) {
	loc, ok := d.byCode[code]
	if !ok {
		return datastructure.Location{}, ErrLocationNotFound
	}
	return loc, nil
}

func (d *InMemory) GetCodeByID(id int32) (string, error) {
	code, ok := d.byID[id]
	if !ok {
		return "", ErrLocationNotFound
	}
	return code, nil
}

func (d *InMemory) GetIDByCode(code string) (int32, error) {
	loc, err := d.GetByCode(code)
	if err != nil {
		return 0, err
	}
	return loc.ID, nil
}

func (d *InMemory) ParkingNodes() ([]string, error) {
	return d.parking, nil
}
