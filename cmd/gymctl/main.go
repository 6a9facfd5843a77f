// gymctl tareas de operación sobre la base de datos del gimnasio.
//
// Uso:
//
//	gymctl migrate [up|down|status|version|redo|reset]
//	gymctl backup
//	gymctl list-backups
//	gymctl restore <archivo.db>      (con el servidor detenido)
//	gymctl create-user -email a@b.com -password secreto123 [-name Ana] [-role admin]
//
// La configuración se lee igual que en el servidor (variables de entorno / .env).
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Gimnasio-api/internal/application/auth"
	appbackup "github.com/jhoicas/Gimnasio-api/internal/application/backup"
	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	infrabackup "github.com/jhoicas/Gimnasio-api/internal/infrastructure/backup"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Gimnasio-api/pkg/config"
	"github.com/jhoicas/Gimnasio-api/pkg/logger"
)

const usage = `uso: gymctl <comando> [argumentos]

comandos:
  migrate [up|down|status|version|redo|reset]   migraciones (por defecto up)
  backup                                         crea un respaldo de la base de datos
  list-backups                                   lista los respaldos existentes
  restore <archivo>                              restaura un respaldo (servidor detenido)
  create-user -email E -password P [-name N] [-role admin|recepcion]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Args[1], os.Args[2:]); err != nil {
		log.Error().Err(err).Str("comando", os.Args[1]).Msg("gymctl")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, cmd string, args []string) error {
	switch cmd {
	case "migrate":
		command := "up"
		if len(args) > 0 {
			command = args[0]
		}
		return withDB(ctx, cfg, false, func(db *sql.DB) error {
			return sqlite.RunMigrations(ctx, db, command, args[min(1, len(args)):]...)
		})

	case "backup":
		return withDB(ctx, cfg, true, func(db *sql.DB) error {
			info, err := backupService(cfg, sqlite.NewTxRunner(db), log).Create(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("respaldo creado: %s (%d bytes)\n", info.Name, info.Size)
			return nil
		})

	case "list-backups":
		out, err := backupService(cfg, nil, log).List(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("carpeta: %s\n", out.Dir)
		for _, b := range out.Backups {
			fmt.Printf("  %s  %s  %d bytes\n", b.CreatedAt.Format("2006-01-02 15:04:05"), b.Name, b.Size)
		}
		return nil

	case "restore":
		if len(args) != 1 {
			return errors.New("restore requiere el nombre del respaldo")
		}
		pre, err := backupService(cfg, nil, log).Restore(ctx, args[0])
		if err != nil {
			return err
		}
		if pre != "" {
			fmt.Printf("copia de la base anterior: %s\n", pre)
		}
		fmt.Println("base de datos restaurada; inicie el servidor nuevamente")
		return nil

	case "create-user":
		fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
		email := fs.String("email", "", "email del usuario")
		password := fs.String("password", "", "contraseña (mínimo 8 caracteres)")
		name := fs.String("name", "", "nombre")
		role := fs.String("role", entity.RoleAdmin, "rol: admin | recepcion")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *email == "" || len(*password) < 8 {
			return errors.New("create-user requiere -email y -password de al menos 8 caracteres")
		}
		return withDB(ctx, cfg, true, func(db *sql.DB) error {
			uc := auth.NewAuthUseCase(sqlite.NewUserRepository(db), auth.JWTConfig{
				Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
			})
			user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
				Name: *name, Email: *email, Password: *password, Role: *role,
			})
			if err != nil {
				return err
			}
			fmt.Printf("usuario creado: id=%d email=%s rol=%s\n", user.ID, user.Email, user.Role)
			return nil
		})
	}
	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("comando desconocido %q", cmd)
}

// withDB abre la base de datos; migrate=true aplica antes las migraciones pendientes.
func withDB(ctx context.Context, cfg *config.Config, migrate bool, fn func(db *sql.DB) error) error {
	db, err := sqlite.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrate {
		if err := sqlite.Migrate(ctx, db); err != nil {
			return err
		}
	}
	return fn(db)
}

func backupService(cfg *config.Config, locker appbackup.WriteLocker, log *logger.Logger) *appbackup.Service {
	return appbackup.NewService(
		infrabackup.NewFileStore(cfg.Backup.Dir, cfg.Backup.Keep),
		locker, cfg.DB.Path, nil, log,
	)
}
