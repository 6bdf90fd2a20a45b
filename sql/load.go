package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed extractions.sql
var extractionsSQL string

// ExtractionsFunctions lists the functions extractions.sql must create
var ExtractionsFunctions = []string{
	"init_extractions",
	"insert_extraction",
	"select_extraction",
	"select_all_extractions",
	"select_extractions_by_dimension",
	"search_extractions",
	"update_extraction_metadata",
	"delete_extraction",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadExtractionsSql loads extraction-related SQL functions.
// Without force nothing happens when all functions already exist.
func LoadExtractionsSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, ExtractionsFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing extractions functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(extractionsSQL)
	if err != nil {
		return fmt.Errorf("error executing extractions SQL: %w", err)
	}

	exist, err := checkFunctions(db, ExtractionsFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL extractions functions loaded successfully")
	return nil
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	return LoadExtractionsSql(db, force)
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	allExist := true
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
