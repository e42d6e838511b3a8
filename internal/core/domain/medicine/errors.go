package medicine

import "errors"

var (
	ErrMedicineDoesNotExist = errors.New("medicine does not exist")
	ErrMedicinePermission   = errors.New("medicine belongs to another user")
)
