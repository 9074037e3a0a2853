package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Sacoleiras-api/pkg/config"
)

// Parámetros del pool cuando DB_MAX_CONNS no está definido.
const (
	defaultMaxConns   = 10
	defaultMinConns   = 1
	lookupTimeout     = 3 * time.Second
	applicationName   = "sacoleiras-api"
	fallbackDNSServer = "8.8.8.8:53"
)

var errNoIPv4 = errors.New("sin dirección IPv4")

// NewPool abre el pool de PostgreSQL, registra el codec NUMERIC ↔ decimal.Decimal y verifica la conexión.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pc, err := poolConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// poolConfig arma la configuración sin abrir conexiones.
// El host del DSN se reemplaza por su IPv4 cuando se puede resolver (contenedores sin IPv6, ej. Supabase).
func poolConfig(ctx context.Context, cfg config.DBConfig) (*pgxpool.Config, error) {
	dsn := withIPv4Host(ctx, cfg.ConnectionString())
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	pc.ConnConfig.DialFunc = dialIPv4
	pc.ConnConfig.RuntimeParams["application_name"] = applicationName

	pc.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		pc.MaxConns = int32(cfg.MaxConns)
	}
	pc.MinConns = defaultMinConns
	if pc.MinConns > pc.MaxConns {
		pc.MinConns = pc.MaxConns
	}
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute

	pc.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

// dialIPv4 conecta por tcp4 si el host tiene IPv4; si no, deja que el dialer decida.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := resolveIPv4(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// resolveIPv4 prueba el resolver del sistema y después un DNS público.
func resolveIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", errNoIPv4
		}
		return host, nil
	}
	resolvers := []*net.Resolver{
		net.DefaultResolver,
		{
			PreferGo: true,
			Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "udp", fallbackDNSServer)
			},
		},
	}
	var lastErr error
	for _, r := range resolvers {
		ip, err := lookupIPv4(ctx, r, host)
		if err == nil {
			return ip, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func lookupIPv4(ctx context.Context, r *net.Resolver, host string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return "", errNoIPv4
}

// withIPv4Host devuelve la URL con el host reemplazado por su IPv4. Ante cualquier fallo devuelve la original.
func withIPv4Host(ctx context.Context, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	ip, err := resolveIPv4(ctx, u.Hostname())
	if err != nil {
		return rawURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}
