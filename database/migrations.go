package database

import (
	"log"

	"judgeapi/models"

	"gorm.io/gorm"
)

// legacySurface maps one set of legacy boolean/password columns onto the
// access-policy columns that replaced them.
type legacySurface struct {
	publicCol   string
	passwordCol string
	modeCol     string
	hashCol     string
}

// NormalizeAccessPolicies migrates judging groups created by the old schema,
// which spread public/private booleans and per-surface password fields across
// the group row, into the tagged access-policy columns. It runs once at
// startup; after normalization the legacy columns are dropped so no read path
// ever branches on them again.
func NormalizeAccessPolicies(db *gorm.DB) {
	migrator := db.Migrator()
	surfaces := []legacySurface{
		{"is_public", "password", "scoring_mode", "scoring_password_hash"},
		{"submissions_open", "submission_password", "intake_mode", "intake_password_hash"},
		{"results_public", "results_password", "results_mode", "results_password_hash"},
	}

	for _, s := range surfaces {
		if !migrator.HasColumn(&models.JudgingGroup{}, s.publicCol) {
			continue
		}

		// Legacy rows with a password become password-gated, closed rows
		// become admin-only, everything else stays open. The legacy password
		// columns held a reversible encoding, not a usable hash, so affected
		// surfaces fall back to admin-only until an admin sets a new password.
		err := db.Exec(
			"UPDATE judging_groups SET "+s.modeCol+" = CASE"+
				" WHEN "+s.passwordCol+" IS NOT NULL AND "+s.passwordCol+" <> '' THEN 'admin'"+
				" WHEN "+s.publicCol+" = false THEN 'admin'"+
				" ELSE 'open' END").Error
		if err != nil {
			log.Printf("Access policy normalization failed for %s: %v", s.publicCol, err)
			continue
		}

		for _, col := range []string{s.publicCol, s.passwordCol} {
			if migrator.HasColumn(&models.JudgingGroup{}, col) {
				if err := migrator.DropColumn(&models.JudgingGroup{}, col); err != nil {
					log.Printf("Failed to drop legacy column %s: %v", col, err)
				}
			}
		}
		log.Printf("Normalized legacy access columns %s/%s", s.publicCol, s.passwordCol)
	}
}
