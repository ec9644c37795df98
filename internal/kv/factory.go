package kv

import "fmt"

// Open selects a Store implementation by driver name.
//
//	memory: in-process only
//	fs:     one file per key under path (default when driver is empty)
//	sqlite: single database file at path
func Open(driver, path string) (Store, error) {
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFilesystem:
		return NewFilesystem(path)
	case DriverSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown kv driver %s", driver)
	}
}
