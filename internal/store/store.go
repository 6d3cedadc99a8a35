package store

import (
	"os"
	"sort"
	"strings"
	"time"

	"LinguaVoice/internal/models"
	"LinguaVoice/pkg/errors"
	"LinguaVoice/pkg/logger"
	"LinguaVoice/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrDuplicateEmail is returned by CreateUser when the email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// requiredColumns is the exact column set of the translations table. A
// mismatch at startup triggers the rebuild in initTranslations.
var requiredColumns = []string{
	"id", "session_id", "original_filename", "original_audio_path",
	"source_language", "detected_source_language", "target_language",
	"original_text", "translated_text", "audio_path", "translated_audio_path",
	"translated_audio_url", "file_size", "processing_time",
	"confidence_score", "voice_type", "audio_duration", "created_at",
}

const createTranslationsSQL = `
CREATE TABLE translations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	original_filename TEXT,
	original_audio_path TEXT,
	source_language TEXT DEFAULT 'en',
	detected_source_language TEXT,
	target_language TEXT,
	original_text TEXT,
	translated_text TEXT,
	audio_path TEXT,
	translated_audio_path TEXT,
	translated_audio_url TEXT,
	file_size INTEGER,
	processing_time REAL,
	confidence_score REAL DEFAULT 0.0,
	voice_type TEXT DEFAULT 'standard',
	audio_duration REAL DEFAULT 0.0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// Store is the durable home of users and translation records.
type Store struct {
	db     *gorm.DB
	driver string
	dsn    string
}

func Open(driver, dsn string) (*Store, error) {
	db, err := util.CreateDatabaseInstance(&gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}, driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	return &Store{db: db, driver: driver, dsn: dsn}, nil
}

func (s *Store) DB() *gorm.DB { return s.db }

// Init creates or repairs the schema and seeds the default accounts. On any
// failure a file-backed sqlite store is deleted outright so that the next
// startup begins from a clean file.
func (s *Store) Init() error {
	if err := s.initSchema(); err != nil {
		s.reset()
		return errors.Wrap(err, "initialize store")
	}
	return nil
}

func (s *Store) initSchema() error {
	if err := s.db.AutoMigrate(&models.User{}); err != nil {
		return err
	}
	if s.driver == "sqlite" || s.driver == "" {
		if err := s.initTranslations(); err != nil {
			return err
		}
	} else {
		if err := s.db.AutoMigrate(&models.Translation{}); err != nil {
			return err
		}
	}
	return s.seedDefaultUsers()
}

// initTranslations compares the on-disk column set against requiredColumns.
// An exact match leaves the table untouched. Anything else rebuilds the
// table, carrying over old rows best-effort by position; rows that cannot
// be mapped are skipped with a warning. This is a lossy legacy migration,
// kept for compatibility with existing databases (see DESIGN.md).
func (s *Store) initTranslations() error {
	existing, err := s.tableColumns("translations")
	if err != nil {
		return err
	}
	if sameColumnSet(existing, requiredColumns) {
		logger.Info("translations table already has the required structure")
		return nil
	}

	var backup [][]interface{}
	if len(existing) > 0 {
		backup, err = s.backupRows()
		if err != nil {
			logger.Warn("could not back up translations before rebuild", zap.Error(err))
		} else {
			logger.Info("backing up translation records before rebuild", zap.Int("rows", len(backup)))
		}
	}

	if err := s.db.Exec("DROP TABLE IF EXISTS translations").Error; err != nil {
		return err
	}
	if err := s.db.Exec(createTranslationsSQL).Error; err != nil {
		return err
	}
	s.restoreRows(backup, len(existing))
	logger.Info("translations table recreated", zap.Int("columns", len(requiredColumns)))
	return nil
}

func (s *Store) tableColumns(table string) ([]string, error) {
	rows, err := s.db.Raw("PRAGMA table_info(" + table + ")").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			defaultValue     interface{}
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

func (s *Store) backupRows() ([][]interface{}, error) {
	rows, err := s.db.Raw("SELECT * FROM translations").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var backup [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		backup = append(backup, values)
	}
	return backup, rows.Err()
}

// restoreRows maps the first 12 old columns positionally onto the new
// schema and pads the rest with defaults. The original created_at is kept
// when the old row extends past the mapped prefix.
func (s *Store) restoreRows(backup [][]interface{}, oldWidth int) {
	if len(backup) == 0 || oldWidth < 12 {
		return
	}
	insertSQL := "INSERT INTO translations (" + strings.Join(requiredColumns, ", ") +
		") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	restored := 0
	for _, row := range backup {
		if len(row) < 12 {
			logger.Warn("skipping unmappable translation row", zap.Int("columns", len(row)))
			continue
		}
		values := make([]interface{}, 0, len(requiredColumns))
		values = append(values, row[:12]...)
		values = append(values, 0, 0.0, 0.0, models.VoiceStandard, 0.0)
		if len(row) > 12 {
			values = append(values, row[len(row)-1])
		} else {
			values = append(values, time.Now())
		}
		if err := s.db.Exec(insertSQL, values...).Error; err != nil {
			logger.Warn("could not restore translation row", zap.Error(err))
			continue
		}
		restored++
	}
	logger.Info("restored translation rows after rebuild",
		zap.Int("restored", restored), zap.Int("total", len(backup)))
}

func (s *Store) seedDefaultUsers() error {
	defaults := []models.User{
		{Email: "superadmin@linguavoice.com", Password: models.HashPassword("super123"), Name: "Super Administrator", Role: models.RoleSuperAdmin},
		{Email: "admin@linguavoice.com", Password: models.HashPassword("admin123"), Name: "Administrator", Role: models.RoleAdmin},
		{Email: "user@linguavoice.com", Password: models.HashPassword("user123"), Name: "Demo User", Role: models.RoleUser},
	}
	for _, u := range defaults {
		var count int64
		if err := s.db.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

// reset deletes a file-backed sqlite store so the next startup begins clean.
func (s *Store) reset() {
	if s.driver != "sqlite" && s.driver != "" {
		return
	}
	dsn := s.dsn
	if dsn == "" || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory") {
		return
	}
	if err := os.Remove(strings.TrimPrefix(dsn, "file:")); err == nil {
		logger.Info("database file deleted, will be recreated on next run")
	}
}

// CreateUser registers a new account. The password must arrive pre-hashed.
func (s *Store) CreateUser(email, passwordHash, name string) (uint, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "check existing user")
	}
	if count > 0 {
		return 0, ErrDuplicateEmail
	}
	user := models.User{Email: email, Password: passwordHash, Name: name, Role: models.RoleUser}
	if err := s.db.Create(&user).Error; err != nil {
		return 0, errors.Wrap(err, "create user")
	}
	return user.ID, nil
}

// Authenticate returns the matching user, or nil on any mismatch. Unknown
// email and wrong password are deliberately indistinguishable.
func (s *Store) Authenticate(email, passwordHash string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND password = ?", email, passwordHash).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "authenticate user")
	}
	return &user, nil
}

func (s *Store) InsertTranslation(t *models.Translation) error {
	if err := s.db.Create(t).Error; err != nil {
		return errors.Wrap(err, "insert translation")
	}
	return nil
}

// FindTranslationBySession returns the newest record for a session, or nil.
func (s *Store) FindTranslationBySession(sessionID string) (*models.Translation, error) {
	var t models.Translation
	err := s.db.Where("session_id = ?", sessionID).Order("id DESC").First(&t).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find translation")
	}
	return &t, nil
}

// RecentHistory returns up to limit records, newest first.
func (s *Store) RecentHistory(limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []models.HistoryEntry
	err := s.db.Model(&models.Translation{}).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "load history")
	}
	return entries, nil
}

func sameColumnSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
