package codes

import (
	"math/rand"
)

// CodeLength matches the CHAR(4) column backing table join codes.
const CodeLength = 4

var letterRunes = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func Generate() string {
	b := make([]rune, CodeLength)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}
	return string(b)
}
