package http_test

import (
	"strconv"

	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func presenceDay() dateonly.Date {
	return dateonly.NewDate(handlerNow)
}
