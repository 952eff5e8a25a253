package directory

import (
	"errors"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"github.com/ecomove/routeplanner/pkg/datastructure"
)

var (
	ErrLocationNotFound = errors.New("location not found")
)

const (
	locationKeyPrefix = "location:"
	idIndexKeyPrefix  = "location_id:"
	parkingNodesKey   = "parking_nodes"
)

// Directory is the badger-backed location directory: id<->code translation,
// location metadata and the parking-capable node list.
type Directory struct {
	db *badger.DB
}

func NewDirectory(db *badger.DB) *Directory {
	return &Directory{db}
}

// SaveLocations persists every location record plus the id index and the
// parking-node list. The parking list keeps file order, which also is the
// graph handle order, so eco-route candidate enumeration is deterministic.
func (d *Directory) SaveLocations(locations []datastructure.Location) error {
	batch := d.db.NewWriteBatch()
	defer batch.Cancel()

	parking := make([]string, 0)
	for _, loc := range locations {
		val, err := encodeLocation(loc)
		if err != nil {
			return err
		}
		if err := batch.Set([]byte(locationKeyPrefix+loc.Code), val); err != nil {
			return err
		}
		if err := batch.Set([]byte(idIndexKeyPrefix+strconv.Itoa(int(loc.ID))), []byte(loc.Code)); err != nil {
			return err
		}
		if loc.HasParking {
			parking = append(parking, loc.Code)
		}
	}

	val, err := encodeCodes(parking)
	if err != nil {
		return err
	}
	if err := batch.Set([]byte(parkingNodesKey), val); err != nil {
		return err
	}
	return batch.Flush()
}

func (d *Directory) get(key []byte) ([]byte, error) {
	var val []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrLocationNotFound
	}
	return val, err
}

func (d *Directory) GetByCode(code string) (datastructure.Location, error) {
	val, err := d.get([]byte(locationKeyPrefix + code))
	if err != nil {
		return datastructure.Location{}, err
	}
	return decodeLocation(val)
}

func (d *Directory) GetCodeByID(id int32) (string, error) {
	val, err := d.get([]byte(idIndexKeyPrefix + strconv.Itoa(int(id))))
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func (d *Directory) GetIDByCode(code string) (int32, error) {
	loc, err := d.GetByCode(code)
	if err != nil {
		return 0, err
	}
	return loc.ID, nil
}

// ParkingNodes returns the parking-capable location codes in file order.
func (d *Directory) ParkingNodes() ([]string, error) {
	val, err := d.get([]byte(parkingNodesKey))
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeCodes(val)
}

func (d *Directory) Close() {
	d.db.Close()
}
