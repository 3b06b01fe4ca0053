package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/hekima/shule/apps/api/echo"
	"github.com/hekima/shule/core"
	"github.com/hekima/shule/core/attendance"
	"github.com/hekima/shule/core/class"
	"github.com/hekima/shule/core/notification"
	"github.com/hekima/shule/core/user"
	"github.com/hekima/shule/services/email"
	"github.com/hekima/shule/storage/database/inmem"
)

var (
	conf    *core.Config
	db      *inmemdb.DB
	app     Server
	appDeps ServerDeps

	usrRepo   user.Repository
	clsRepo   class.Repository
	attRepo   attendance.Repository
	notifRepo notification.Repository

	usrSvc   *user.Service
	clsSvc   *class.Service
	attSvc   *attendance.Service
	notifSvc *notification.Service

	errMissingToken = httpErr{Message: "Unauthorized"}
	errForbidden    = httpErr{Message: "Forbidden"}
)

func TestMain(m *testing.M) {
	conf = core.NewConfig()
	conf.TestMode = true
	conf.Debug = true
	conf.SecretKey = []byte("s3cr3t-t3st-k3y")
	conf.Server.JWTExpirationDelta = 10 * time.Minute
	conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour

	// set up DB & repos
	var err error
	if db, err = inmemdb.Open(); err != nil {
		os.Exit(1)
	}
	usrRepo = inmemdb.NewUserRepository(db)
	clsRepo = inmemdb.NewClassRepository(db)
	attRepo = inmemdb.NewAttendanceRepository(db)
	notifRepo = inmemdb.NewNotificationRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc = user.NewService(usrRepo)
	clsSvc = class.NewService(clsRepo)
	attSvc = attendance.NewService(attRepo)
	notifSvc = notification.NewService(notifRepo, usrRepo, mailSvc)

	// set up validation
	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator(enLocale.Locale())
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// set up server
	appDeps = ServerDeps{
		Conf:            conf,
		Logger:          nopLogger{},
		UserSvc:         usrSvc,
		ClassSvc:        clsSvc,
		AttendanceSvc:   attSvc,
		NotificationSvc: notifSvc,
		Validate:        validate,
		Translator:      translator,
	}
	app = NewServer(appDeps)

	os.Exit(m.Run())
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func resetDB(t *testing.T) {
	t.Helper()
	db.Reset()
	emailsvc.ResetSentMessages()
	// rebuild the server so per-request state held in the handlers (e.g. the
	// per-teacher QR issuers) does not leak across tests once IDs are reused
	app = NewServer(appDeps)
}

type httpErr struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	claims := GetUserClaims(conf, usr)
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func createUser(t *testing.T, fullName, uname, email, pwd string, role user.Role) user.User {
	t.Helper()
	usr, err := usrSvc.Create(user.NewUser{
		Username: uname,
		Password: pwd,
		Role:     role,
		FullName: fullName,
		Email:    email,
	})
	if err != nil {
		t.Fatalf("createUser(): %v", err)
	}
	return usr
}

func createClass(t *testing.T, name string, teacherID int) class.Class {
	t.Helper()
	cls, err := clsSvc.Create(
		class.NewClass{Name: name, TeacherID: teacherID, Room: "A1"},
		[]class.ScheduleSlot{{Date: "2021-03-08", StartTime: "09:00", EndTime: "10:00"}},
	)
	if err != nil {
		t.Fatalf("createClass(): %v", err)
	}
	return cls
}
