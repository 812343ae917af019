package roommedia

import (
	"errors"
)

var InvalidCanvasScaleError = errors.New("invalid canvas scale")
