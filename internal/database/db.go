package database

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

// Init apre la connessione con retry, migra lo schema e crea gli
// utenti di bootstrap. Ritorna il *gorm.DB da iniettare nel resto
// dell'applicazione.
func Init(dsn, adminUsername, adminPassword string) *gorm.DB {
	var db *gorm.DB
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	createDefaultAdmin(db, adminUsername, adminPassword)
	seedDefaultUsers(db)

	return db
}

// Migrate applica l'AutoMigrate di tutte le entità. Esportata perché i
// test la riusano sui database sqlite in memoria.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Utente{},
		&models.ApiToken{},
		&models.Consulente{},
		&models.Cliente{},
		&models.Lead{},
		&models.DocumentoCliente{},
		&models.Pratica{},
		&models.Nota{},
		&models.Notifica{},
		&models.SchedaConsulenza{},
	)
}

// admin solo da configurazione, mai da form
func createDefaultAdmin(db *gorm.DB, username, password string) {
	if username == "" {
		username = "admin@debitistop.local"
	}
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := db.Model(&models.Utente{}).
		Where("ruolo = ?", models.RuoloAdmin).
		Count(&count).Error; err != nil {
		log.Printf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default admin password: %v", err)
		return
	}

	admin := models.Utente{
		Username:     username,
		PasswordHash: string(hash),
		Ruolo:        models.RuoloAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("failed to create default admin: %v", err)
		return
	}

	log.Printf("created default admin user: %s", username)
}

// un operatore e un legale di prova per gli ambienti demo
func seedDefaultUsers(db *gorm.DB) {
	type seedUser struct {
		Username string
		Password string
		Ruolo    models.Ruolo
	}

	users := []seedUser{
		{
			Username: "operatore@debitistop.local",
			Password: "Operatore123!",
			Ruolo:    models.RuoloOperatore,
		},
		{
			Username: "legale@debitistop.local",
			Password: "Legale123!",
			Ruolo:    models.RuoloLegale,
		},
	}

	for _, u := range users {
		var count int64
		if err := db.Model(&models.Utente{}).
			Where("username = ?", u.Username).
			Count(&count).Error; err != nil {
			log.Printf("failed to check seed user %s: %v", u.Username, err)
			continue
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("failed to hash password for %s: %v", u.Username, err)
			continue
		}

		user := models.Utente{
			Username:     u.Username,
			PasswordHash: string(hash),
			Ruolo:        u.Ruolo,
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("failed to create seed user %s: %v", u.Username, err)
			continue
		}

		log.Printf("created seed user: %s (ruolo=%s)", u.Username, u.Ruolo)
	}
}
