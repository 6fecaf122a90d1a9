package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wash-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/wash-manager-api/internal/config"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/pkg/log"
	"github.com/vfg2006/wash-manager-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

var paymentMethods = []string{
	"Dinheiro",
	"Pix",
	"Cartão de Débito",
	"Cartão de Crédito",
	"Fiado",
}

func main() {
	schemaPath := flag.String("schema", "infrastructure/migration/sql/0001_init.sql", "arquivo SQL com a estrutura do banco")
	adminEmail := flag.String("admin-email", "admin@lavajato.local", "email do administrador inicial")
	adminPassword := flag.String("admin-password", "", "senha do administrador inicial (obrigatória)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel, cfg.App.Env)

	if *adminPassword == "" {
		log.L.Fatal("Informe -admin-password para criar o administrador inicial")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.L.Info("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}
	defer conn.Close()

	startTime := time.Now()

	if err := applySchema(ctx, conn, *schemaPath); err != nil {
		log.L.WithError(err).Fatal("Erro ao aplicar a estrutura do banco")
	}

	inserted, err := seedPaymentMethods(ctx, conn)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao cadastrar formas de pagamento")
	}
	log.L.Infof("Formas de pagamento cadastradas: %d novas de %d", inserted, len(paymentMethods))

	created, err := seedAdministrator(ctx, conn, *adminEmail, *adminPassword)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao criar administrador inicial")
	}
	if created {
		log.L.WithField("email", *adminEmail).Info("Administrador inicial criado")
	} else {
		log.L.WithField("email", *adminEmail).Info("Administrador já existia, nada a fazer")
	}

	log.L.Infof("Carga inicial concluída em %v", time.Since(startTime))
}

func applySchema(ctx context.Context, conn *postgres.Connection, schemaPath string) error {
	log.L.WithField("file", schemaPath).Info("Aplicando estrutura do banco...")

	script, err := os.ReadFile(schemaPath)
	if err != nil {
		return err
	}

	_, err = conn.ExecContext(ctx, string(script))
	return err
}

func seedPaymentMethods(ctx context.Context, conn *postgres.Connection) (int64, error) {
	var total int64

	err := conn.RunInTransaction(ctx, nil, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO payment_methods (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, name := range paymentMethods {
			result, err := stmt.ExecContext(ctx, utils.GenerateID(), name)
			if err != nil {
				return err
			}
			affected, _ := result.RowsAffected()
			total += affected
		}
		return nil
	})

	return total, err
}

func seedAdministrator(ctx context.Context, conn *postgres.Connection, email, password string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	result, err := conn.ExecContext(ctx,
		`INSERT INTO collaborators (id, name, email, role, active, password_hash)
		 VALUES ($1, $2, $3, $4, TRUE, $5)
		 ON CONFLICT (email) DO NOTHING`,
		utils.GenerateID(), "Administrador", email, string(domain.RoleAdministrator), string(hash),
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}
