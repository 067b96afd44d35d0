//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Outcome describes what the pipeline did with a message
// ENUM(invalid,duplicate,no_link,delivered,failed)
type Outcome string
