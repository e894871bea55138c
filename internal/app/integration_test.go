//go:build integration

package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"skypath_backend/internal/config"
	"skypath_backend/internal/model"
	"skypath_backend/internal/repository"
	"skypath_backend/internal/service"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testBucket   = "skypath-test"
	minioUser    = "skypath"
	minioSecret  = "skypath-secret"
	mysqlRootPwd = "skypath-root"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func startContainer(t *testing.T, ctx context.Context, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})
	return c
}

func containerHost(t *testing.T, ctx context.Context, c testcontainers.Container) string {
	t.Helper()
	host, err := c.Host(ctx)
	require.NoError(t, err)
	return host
}

func newIntegrationApp(t *testing.T) (*App, *minio.Client) {
	t.Helper()
	skipIfNoDocker(t)
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	mysqlC := startContainer(t, ctx, testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": mysqlRootPwd,
			"MYSQL_DATABASE":      "skypath",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("ready for connections").WithOccurrence(2).WithStartupTimeout(2*time.Minute),
			wait.ForListeningPort("3306/tcp"),
		),
	})
	minioC := startContainer(t, ctx, testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Cmd:          []string{"server", "/data"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     minioUser,
			"MINIO_ROOT_PASSWORD": minioSecret,
		},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	})

	dbPort, err := mysqlC.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)
	minioPort, err := minioC.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Host:      containerHost(t, ctx, mysqlC),
			Port:      dbPort.Int(),
			User:      "root",
			Password:  mysqlRootPwd,
			DBName:    "skypath",
			Charset:   "utf8mb4",
			ParseTime: true,
			LogLevel:  "silent",
		},
		JWT: config.JWTConfig{Secret: "integration-secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{
			Type:          util.StorageMinio,
			MinioEndpoint: fmt.Sprintf("%s:%d", containerHost(t, ctx, minioC), minioPort.Int()),
			MinioAccessID: minioUser,
			MinioSecret:   minioSecret,
			MinioBucket:   testBucket,
			MinioRegion:   "us-east-1",
		},
	}

	db, err := database.InitDB(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	storage, err := service.NewStorageService(&cfg.Storage)
	require.NoError(t, err)
	require.NoError(t, storage.Prepare(ctx))

	a := New(cfg, db, storage)
	t.Cleanup(func() { a.Close(context.Background()) })
	return a, storage.Provider.(*service.MinioStorageProvider).Client
}

func TestIntegration_UploadToMinio(t *testing.T) {
	a, client := newIntegrationApp(t)
	admin := a.adminToken(t)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, uploadRequest(t, admin, uploadFields(), mp4Header))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	video := decode(t, w)["video"].(map[string]interface{})
	url := video["videoUrl"].(string)
	prefix := fmt.Sprintf("http://%s/%s/", a.Config.Storage.MinioEndpoint, testBucket)
	require.True(t, strings.HasPrefix(url, prefix), url)

	info, err := client.StatObject(context.Background(), testBucket, strings.TrimPrefix(url, prefix), minio.StatObjectOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, len(mp4Header), info.Size)
	assert.Equal(t, "video/mp4", info.ContentType)
}

func TestIntegration_MySQLConstraints(t *testing.T) {
	a, _ := newIntegrationApp(t)
	ctx := context.Background()
	users := repository.NewUserRepository(a.DB)

	first := &model.User{Email: "unique@example.com", Password: "x", Name: "a", Role: model.Student}
	require.NoError(t, users.Create(ctx, first))
	err := users.Create(ctx, &model.User{Email: "unique@example.com", Password: "x", Name: "b", Role: model.Student})
	assert.True(t, repository.IsDuplicateKey(err), "%v", err)

	token := a.registerAndLogin(t, "mysql@example.com", "10")
	entry := gin.H{"date": "2025-05", "korean": 60, "math": 90, "english": 90, "science": 90}
	w := a.do(t, http.MethodPost, "/api/users/score-history", token, entry)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = a.do(t, http.MethodPost, "/api/users/score-history", token, entry)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 相同值更新在 MySQL 上影响行数为 0，接口仍应成功
	scores := gin.H{"korean": 60, "math": 90, "english": 90, "science": 90}
	w = a.do(t, http.MethodPut, "/api/users/scores", token, scores)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	a.seedVideo(t, "mysql-korean", "10", model.SubjectKorean, model.VideoActive)
	w = a.do(t, http.MethodGet, "/api/recommendations", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["recommendations"].([]interface{}), 1)

	w = a.do(t, http.MethodGet, "/api/videos?search=MYSQL", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["pagination"].(map[string]interface{})["total"])
}
