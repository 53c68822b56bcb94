package models

// All returns every model in dependency order, owners before children, so
// AutoMigrate can create foreign keys as it goes.
func All() []any {
	return []any{
		&User{},
		&CustomerProfile{},
		&AdminProfile{},
		&Brand{},
		&Review{},
		&File{},
		&LandingPage{},
		&Block{},
		&QRCode{},
		&ScanLog{},
		&OutboxEvent{},
	}
}
