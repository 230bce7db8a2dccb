package occupancy

import "errors"

var (
	ErrDateExpected  = &InvalidParameterError{msg: "Invalid parameter: date expected"}
	ErrDatesExpected = &InvalidParameterError{msg: "Invalid parameter: startDate and endDate expected to be dates"}
	ErrRoomsExpected = &InvalidParameterError{msg: "Invalid parameter: rooms expected to be an array"}
	ErrDateOrder     = &InvalidParameterError{msg: "Invalid parameter: startDate must not be after endDate"}
)

// InvalidParameterError is returned when an argument of an occupancy query
// is missing or has the wrong shape.
type InvalidParameterError struct {
	msg string
}

func (e *InvalidParameterError) Error() string {
	return e.msg
}

func IsInvalidParameter(err error) *InvalidParameterError {
	if err == nil {
		return nil
	}

	var paramErr *InvalidParameterError

	if errors.As(err, &paramErr) {
		return paramErr
	}

	return nil
}
