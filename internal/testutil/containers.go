package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/localnerve/securepulse/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/lib/pq"
)

const (
	dbNetworkAlias    = "postgres"
	redisNetworkAlias = "redis"
	serviceImage      = "securepulse-test:latest"
)

// TestContainers is a postgres + redis stack, optionally with the service
// image running against it.
type TestContainers struct {
	Network          *testcontainers.DockerNetwork
	DBContainer      testcontainers.Container
	RedisContainer   testcontainers.Container
	ServiceContainer testcontainers.Container
	BuilderContainer testcontainers.Container

	// Host-reachable endpoints
	DBHost    string
	DBPort    string
	RedisAddr string
	BaseURL   string
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.ServiceContainer != nil {
		if err := tc.ServiceContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate service: %v", err)
		}
	}
	if tc.BuilderContainer != nil {
		if err := tc.BuilderContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate service builder: %v", err)
		}
	}
	if tc.RedisContainer != nil {
		if err := tc.RedisContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Redis: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Postgres: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateAllTestContainers starts the stack described by the DB_* and REDIS_*
// environment. With withService the service image is built, if missing, and
// started on the same network.
func CreateAllTestContainers(t *testing.T, withService bool) (*TestContainers, error) {
	ctx := context.Background()
	tc := &TestContainers{}

	fail := func(err error, msg string) (*TestContainers, error) {
		tc.Terminate(t)
		return nil, fmt.Errorf("%s: %w", msg, err)
	}

	// Create a network
	nw, err := network.New(ctx)
	if err != nil {
		return fail(err, "Failed to create network")
	}
	tc.Network = nw
	networkName := nw.Name

	// Create and start the Database container
	tcpDBPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return fail(err, "Failed to create DB port")
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("DB_IMAGE", "postgres:16-alpine"),
			ExposedPorts: []string{string(tcpDBPort)},
			Env: map[string]string{
				"POSTGRES_USER":     envOr("DB_USER", "securepulse_owner"),
				"POSTGRES_PASSWORD": envOr("DB_PASSWORD", "owner-password"),
				"POSTGRES_DB":       envOr("DB_DATABASE", "securepulse"),
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort(tcpDBPort),
			).WithDeadline(60 * time.Second),
			Networks: []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		return fail(err, "Failed to start Postgres")
	}
	tc.DBContainer = dbContainer

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		return fail(err, "Failed to get Postgres host")
	}
	dbPort, err := dbContainer.MappedPort(ctx, tcpDBPort)
	if err != nil {
		return fail(err, "Failed to get Postgres port")
	}
	tc.DBHost, tc.DBPort = dbHost, dbPort.Port()

	if err := performPostgresDBInit(dbHost, dbPort); err != nil {
		return fail(err, "Failed to initialize database")
	}

	// Create and start the Redis container
	tcpRedisPort, err := nat.NewPort("tcp", "6379")
	if err != nil {
		return fail(err, "Failed to create Redis port")
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("REDIS_IMAGE", "redis:7-alpine"),
			ExposedPorts: []string{string(tcpRedisPort)},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			Networks:     []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {redisNetworkAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		return fail(err, "Failed to start Redis")
	}
	tc.RedisContainer = redisContainer

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, tcpRedisPort)
	tc.RedisAddr = fmt.Sprintf("%s:%s", redisHost, redisPort.Port())
	logMessage(t, "DB=%s:%s REDIS_ADDR=%s", tc.DBHost, tc.DBPort, tc.RedisAddr)

	if !withService {
		return tc, nil
	}

	if err := startService(ctx, t, tc, networkName); err != nil {
		return fail(err, "Failed to start service")
	}
	return tc, nil
}

func startService(ctx context.Context, t *testing.T, tc *TestContainers, networkName string) error {
	exists, err := imageExists(ctx, serviceImage)
	if err != nil {
		return fmt.Errorf("failed to check if image exists: %w", err)
	}

	servicePort := envOr("PORT", "3000")
	tcpServicePort, err := nat.NewPort("tcp", servicePort)
	if err != nil {
		return err
	}

	req := testcontainers.ContainerRequest{
		ExposedPorts: []string{string(tcpServicePort)},
		Env: map[string]string{
			"DB_TYPE":                    "postgres",
			"DB_HOST":                    dbNetworkAlias,
			"DB_PORT":                    "5432",
			"DB_DATABASE":                envOr("DB_DATABASE", "securepulse"),
			"DB_APP_USER":                envOr("DB_APP_USER", "securepulse_app"),
			"DB_APP_PASSWORD":            envOr("DB_APP_PASSWORD", "app-password"),
			"DB_USER":                    envOr("DB_USER", "securepulse_owner"),
			"DB_PASSWORD":                envOr("DB_PASSWORD", "owner-password"),
			"REDIS_ADDR":                 redisNetworkAlias + ":6379",
			"JWT_SECRET":                 envOr("JWT_SECRET", "testcontainers-secret"),
			"ENFORCE_BRACELET_OWNERSHIP": envOr("ENFORCE_BRACELET_OWNERSHIP", "true"),
			"PORT":                       servicePort,
		},
		WaitingFor: wait.ForHTTP("/api/health").WithPort(tcpServicePort).WithStartupTimeout(60 * time.Second),
		Networks:   []string{networkName},
	}

	if exists {
		logMessage(t, "Image %s exists, reusing...", serviceImage)
		req.Image = serviceImage
	} else {
		sessionID := uuid.NewString()
		buildArgs := map[string]*string{
			"RESOURCE_REAPER_SESSION_ID": &sessionID,
		}
		buildContext := envOr("TESTCONTAINERS_BUILD_CONTEXT", "../..")

		logMessage(t, "Image %s does not exist, building...", serviceImage)
		builder, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				FromDockerfile: testcontainers.FromDockerfile{
					Context:    buildContext,
					Dockerfile: "Dockerfile",
					Repo:       "securepulse-test-builder",
					Tag:        "latest",
					BuildArgs:  buildArgs,
					BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
						opts.Target = "builder"
					},
					PrintBuildLog: true,
				},
			},
			Started: false,
		})
		if err != nil {
			return fmt.Errorf("failed to build service builder: %w", err)
		}
		tc.BuilderContainer = builder

		repo, tag, _ := strings.Cut(serviceImage, ":")
		req.FromDockerfile = testcontainers.FromDockerfile{
			Context:    buildContext,
			Dockerfile: "Dockerfile",
			Repo:       repo,
			Tag:        tag,
			KeepImage:  true,
			BuildArgs:  buildArgs,
			BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
				opts.Target = "runtime"
			},
			PrintBuildLog: true,
		}
	}

	service, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return err
	}
	tc.ServiceContainer = service

	host, _ := service.Host(ctx)
	port, _ := service.MappedPort(ctx, tcpServicePort)
	tc.BaseURL = fmt.Sprintf("http://%s:%s", host, port.Port())
	logMessage(t, "BASE_URL=%s", tc.BaseURL)
	return nil
}

// performPostgresDBInit creates the application role and grants it row
// access to tables the schema owner creates.
func performPostgresDBInit(host string, port nat.Port) error {
	database := envOr("DB_DATABASE", "securepulse")
	owner := envOr("DB_USER", "securepulse_owner")
	appUser := envOr("DB_APP_USER", "securepulse_app")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port.Port(), owner, envOr("DB_PASSWORD", "owner-password"), database)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return fmt.Errorf("postgres not ready after 30 seconds: %w", err)
	}

	password := strings.ReplaceAll(envOr("DB_APP_PASSWORD", "app-password"), "'", "''")
	create := fmt.Sprintf(`CREATE ROLE "%s" LOGIN PASSWORD '%s'`, strings.ReplaceAll(appUser, `"`, `""`), password)
	if _, err := db.Exec(create); err != nil && !strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("failed to create role %s: %w", appUser, err)
	}

	return executeSQL(db, data.PostgresPrivileges(database, owner, appUser))
}

// executeSQL runs each statement of a script. Full-line "--" comments are skipped.
func executeSQL(db *sql.DB, script string) error {
	var lines []string
	for _, l := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(l), "--") {
			continue
		}
		lines = append(lines, l)
	}

	for _, q := range strings.Split(strings.Join(lines, "\n"), ";") {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%w: when executing > %s", err, q)
		}
	}
	return nil
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
