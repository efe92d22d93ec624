package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/rfid-pos/internal/device"
	api "github.com/rogerio-castellano/rfid-pos/internal/http"
	handler "github.com/rogerio-castellano/rfid-pos/internal/http/handlers"
	rl "github.com/rogerio-castellano/rfid-pos/internal/http/rate_limiter"
	"github.com/rogerio-castellano/rfid-pos/internal/logbook"
	"github.com/rogerio-castellano/rfid-pos/internal/models"
	"github.com/rogerio-castellano/rfid-pos/internal/pos"
	"github.com/rogerio-castellano/rfid-pos/internal/repo"
	"github.com/rogerio-castellano/rfid-pos/internal/scanner"
	"github.com/rogerio-castellano/rfid-pos/internal/snapshot"
)

const settleInterval = 30 * time.Millisecond

var (
	adminToken   string
	cashierToken string

	catalogRepo     *repo.MemoryCatalogRepository
	transactionRepo *repo.MemoryTransactionRepository
	terminal        *pos.Terminal
	channel         *device.Channel
	logs            *logbook.Book

	// portOpener lets individual tests swap the serial device the channel
	// opens; the default refuses to connect.
	portOpener device.Opener = func(name string, baud int) (device.Port, error) {
		return nil, fmt.Errorf("no device on %s", name)
	}
)

func init() {
	setupTestState("secret")
	r := api.NewRouter()

	var err error
	adminToken, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating admin token: %v", err))
	}
	cashierToken, err = generateToken(r, "cashier1", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating cashier token: %v", err))
	}
}

func setupTestState(password string) {
	catalogRepo = repo.NewMemoryCatalogRepository()
	handler.SetCatalogRepo(catalogRepo)

	transactionRepo = repo.NewMemoryTransactionRepository()
	handler.SetTransactionRepo(transactionRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})
	userRepo.CreateUser(models.User{
		Username:     "cashier1",
		PasswordHash: string(hash),
		Role:         "cashier",
	})

	metricsRepo := repo.NewInMemoryMetricsRepository()
	handler.SetMetricsRepo(metricsRepo)
	metricsRepo.SetRepositories(catalogRepo, transactionRepo)

	logs = logbook.New(nil)
	handler.SetLogbook(logs)

	dir, err := os.MkdirTemp("", "pos-handlers-test")
	if err != nil {
		panic(err)
	}
	store := snapshot.NewStore(filepath.Join(dir, "pos_data.json"), nil)
	committer := snapshot.NewCommitter(store, catalogRepo, transactionRepo, logs)

	channel = device.NewChannel(func(name string, baud int) (device.Port, error) {
		return portOpener(name, baud)
	}, settleInterval, func(tag string) {
		terminal.Scan(tag, pos.SourceSerial)
	}, nil)
	handler.SetDeviceChannel(channel)

	terminal = pos.NewTerminal(catalogRepo, transactionRepo, committer, channel, logs, pos.Settings{
		TaxRate:      8.5,
		KillPassword: "00000000",
	}, nil)
	terminal.SetPersister(committer)
	handler.SetTerminal(terminal)

	classifier := scanner.New(settleInterval, func(raw string, mode scanner.Mode) {
		src := pos.SourceManual
		if mode == scanner.ModeReaderBurst {
			src = pos.SourceReader
		}
		terminal.Scan(raw, src)
	}, nil)
	handler.SetClassifier(classifier)

	handler.SetCompanySettings(models.CompanySettings{
		Name:          "Test Store",
		TaxRate:       8.5,
		InvoicePrefix: "INV",
	})
}

// resetState returns the terminal to a clean slate between tests. The rate
// limiter is reset too so long suites do not exhaust one visitor's burst.
func resetState() {
	catalogRepo.Clear()
	transactionRepo.Clear()
	terminal.ClearCart()
	terminal.SetKillPolicy(false, "00000000")
	logs.Clear()
	rl.CleanupAllVisitors()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any, token string) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", p, adminToken)
}

func scanTag(r http.Handler, tag string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/scan", handler.ScanRequest{TagID: tag}, adminToken)
}

// fakeSerialPort is an in-memory serial device for the connect/disconnect
// round trip.
type fakeSerialPort struct {
	mu      sync.Mutex
	written bytes.Buffer
	closed  chan struct{}
	once    sync.Once
}

func newFakeSerialPort() *fakeSerialPort {
	return &fakeSerialPort{closed: make(chan struct{})}
}

func (f *fakeSerialPort) Read(p []byte) (int, error) {
	<-f.closed
	return 0, io.EOF
}

func (f *fakeSerialPort) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written.Write(p)
}

func (f *fakeSerialPort) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}
