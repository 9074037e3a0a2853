package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sacoleiras-api/pkg/config"
)

func TestLoad_DesdeVariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_NAME", "consignado")
	t.Setenv("ADMIN_SIGNUP_CODE", "codigo-admin")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "secreto", cfg.JWT.Secret)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "consignado", cfg.DB.DBName)
	assert.Equal(t, "codigo-admin", cfg.Auth.AdminSignupCode)
	assert.Equal(t, 60, cfg.JWT.Expiration, "expiración por defecto")
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_DriverMemoriaYMigracion(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_PuertoInvalidoUsaDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("HTTP_PORT", "abc")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "sac", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/sac?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
