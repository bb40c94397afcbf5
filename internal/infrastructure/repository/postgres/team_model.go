package postgres

type teamTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}
