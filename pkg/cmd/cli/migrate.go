package cli

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	colorable "github.com/mattn/go-colorable"
	migrate "github.com/rubenv/sql-migrate"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Jonathan-Adapt/pcbridge/config"
)

type MigrateHandler struct {
	c *config.Config
}

func newMigrateHandler(c *config.Config) *MigrateHandler {
	return &MigrateHandler{c: c}
}

// databaseURL resolves the migration target. The first positional argument
// wins, the configured DATABASE_URL is the fallback.
func (h *MigrateHandler) databaseURL(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return h.c.DatabaseURL
}

func (h *MigrateHandler) MigrateSQL(cmd *cobra.Command, args []string) {
	url := h.databaseURL(args)
	if url == "" {
		fmt.Println(cmd.UsageString())
		os.Exit(2)
	}

	log.SetLevel(log.DebugLevel)
	log.SetFormatter(&log.TextFormatter{
		ForceColors: true,
	})
	log.SetOutput(colorable.NewColorableStdout())

	db, err := sqlx.Open("postgres", url)
	if err != nil {
		log.Errorf("Cannot open database: %s", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Errorf("Cannot reach database: %s", err)
		os.Exit(1)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: "db/migrations",
	}

	log.Info("Applying peer schema migrations...")
	n, err := migrate.Exec(db.DB, "postgres", migrations, migrate.Up)
	if err != nil {
		log.Errorf("Migration failed: %s", err)
		os.Exit(1)
	}
	log.Infof("Applied %d migrations.", n)
}
