package model

// Category is persisted as {id, nome, userId}.
type Category struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"nome" json:"nome"`
	OwnerID string `db:"user_id" json:"userId"`
}
