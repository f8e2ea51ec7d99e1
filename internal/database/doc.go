// Package database provides the data access layer for the library.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Driver selection, migrations, Ping/Close
//	├── seed.go          # Reference catalog for empty databases
//	├── authors/         # Author CRUD
//	├── publishers/      # Publisher CRUD
//	├── categories/      # Category CRUD
//	├── books/           # Book CRUD, category links, lookups by author/category
//	├── users/           # Library members
//	├── reservations/    # Book reservations
//	├── reviews/         # Author and book reviews
//	└── audit/           # Audit event storage
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type wrapping a *gorm.DB. The handle
// may be the root connection or a transaction, so services build repositories
// per unit of work:
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	err = db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
//		repo := reservations.NewRepository(tx)
//		return repo.Create(reservation)
//	})
//
// # Drivers
//
// SQLite is the default and needs only DATABASE_PATH. PostgreSQL and MySQL
// are selected with DATABASE_DRIVER and read DATABASE_DSN.
//
// # Adding a New Domain
//
//  1. Add the entity to internal/entities and to the models list in database.go
//  2. Create a sub-package with a Repository struct holding a *gorm.DB
//  3. Add a NewRepository(db *gorm.DB) constructor
//  4. Register delete rules for its dependents in internal/integrity
package database
