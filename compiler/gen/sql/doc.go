// Package sql is the SQL backend of the code generator. For every
// //noodle:sql configuration of an entity it emits a binding type with the
// requested capabilities:
//
//	// CookieCRUD stores Cookie[int64] entities in a SQLite database.
//	type CookieCRUD struct{}
//
//	func (CookieCRUD) Create(ctx context.Context, storage *sql.Backing[sql.SQLite, int64], entity Cookie[int64]) (noodle.AssocID[Cookie[int64], int64], error)
//	func (CookieCRUD) Read(ctx context.Context, storage *sql.Backing[sql.SQLite, int64], id noodle.AssocID[Cookie[int64], int64]) (Cookie[int64], bool, error)
//	func (CookieCRUD) Update(...) (bool, error)
//	func (CookieCRUD) Delete(...) (bool, error)
//	func (CookieCRUD) DeleteReturning(...) (Cookie[int64], bool, error)
//	func (CookieCRUD) Table() schema.Table
//
// Statements are built once at generation time by BuildQueries and embedded
// as string literals.
package sql
