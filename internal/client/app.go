package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-privacy-keeper/internal/adapter"
	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

type command struct {
	usage   string
	public  bool
	handler func(ctx context.Context, args []string) error
}

type App struct {
	server adapter.ServerAdapter
	cfg    config.ClientAdapter
	out    io.Writer

	commands map[string]command

	logger *logger.Logger
}

// NewApp builds the command-line client over server. Command output goes
// to out.
func NewApp(server adapter.ServerAdapter, cfg config.ClientAdapter, out io.Writer, logger *logger.Logger) *App {
	a := &App{server: server, cfg: cfg, out: out, logger: logger}

	a.commands = map[string]command{
		"version":   {usage: "version", public: true, handler: a.version},
		"login":     {usage: "login", public: true, handler: a.login},
		"add":       {usage: "add -name NAME -contact CONTACT -diagnosis DIAGNOSIS [-consent]", handler: a.add},
		"list":      {usage: "list", handler: a.list},
		"get":       {usage: "get ID", handler: a.get},
		"anonymize": {usage: "anonymize", handler: a.anonymize},
		"encrypt":   {usage: "encrypt ID", handler: a.encrypt},
		"decrypt":   {usage: "decrypt ID", handler: a.decrypt},
		"restore":   {usage: "restore ID", handler: a.restore},
		"retention": {usage: "retention ID [DAYS]", handler: a.retention},
		"consent":   {usage: "consent ID true|false", handler: a.consent},
		"expired":   {usage: "expired", handler: a.expired},
		"purge":     {usage: "purge", handler: a.purge},
		"audit":     {usage: "audit [-limit N]", handler: a.audit},
		"export":    {usage: "export [-o FILE]", handler: a.export},
		"activity":  {usage: "activity [-days N]", handler: a.activity},
	}

	return a
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w\n%s", ErrNoCommand, a.Usage())
	}

	name := args[0]
	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("%w %q\n%s", ErrUnknownCommand, name, a.Usage())
	}

	if !cmd.public {
		if err := a.authenticate(ctx); err != nil {
			return err
		}
	}

	a.logger.Debug().Str("func", "*App.Run").Str("command", name).Msg("running command")

	if err := cmd.handler(ctx, args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Usage lists every command with its operands.
func (a *App) Usage() string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("commands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", a.commands[name].usage)
	}
	return b.String()
}

func (a *App) authenticate(ctx context.Context) error {
	if a.server.Token() != "" {
		return nil
	}
	if a.cfg.Username == "" || a.cfg.Password == "" {
		return ErrNoCredentials
	}

	_, err := a.server.Login(ctx, models.User{Username: a.cfg.Username, Password: a.cfg.Password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ── commands ─────────────────────────────────────────────────────────────────

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.server.Version(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, v)
	return err
}

func (a *App) login(ctx context.Context, _ []string) error {
	if a.cfg.Username == "" || a.cfg.Password == "" {
		return ErrNoCredentials
	}

	token, err := a.server.Login(ctx, models.User{Username: a.cfg.Username, Password: a.cfg.Password})
	if err != nil {
		return err
	}
	return a.print(map[string]any{"user_id": token.UserID, "role": token.Role.String(), "token": token.SignedString})
}

func (a *App) add(ctx context.Context, args []string) error {
	var subject models.NewSubject

	fs := newFlagSet("add")
	fs.StringVar(&subject.Name, "name", "", "subject name")
	fs.StringVar(&subject.Contact, "contact", "", "subject contact")
	fs.StringVar(&subject.Diagnosis, "diagnosis", "", "subject diagnosis")
	fs.BoolVar(&subject.ConsentGiven, "consent", false, "consent given")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	id, err := a.server.AddSubject(ctx, subject)
	if err != nil {
		return err
	}
	return a.print(models.AddSubjectResponse{ID: id})
}

func (a *App) list(ctx context.Context, _ []string) error {
	views, err := a.server.ListSubjects(ctx)
	if err != nil {
		return err
	}
	if views == nil {
		views = []models.SubjectView{}
	}
	return a.print(views)
}

func (a *App) get(ctx context.Context, args []string) error {
	id, err := subjectID(args)
	if err != nil {
		return err
	}

	view, err := a.server.GetSubject(ctx, id)
	if err != nil {
		return err
	}
	return a.print(view)
}

func (a *App) anonymize(ctx context.Context, _ []string) error {
	n, err := a.server.AnonymizeAll(ctx)
	if err != nil {
		return err
	}
	return a.print(models.CountResponse{Count: n})
}

func (a *App) encrypt(ctx context.Context, args []string) error {
	id, err := subjectID(args)
	if err != nil {
		return err
	}
	return a.server.EncryptSubject(ctx, id)
}

func (a *App) decrypt(ctx context.Context, args []string) error {
	id, err := subjectID(args)
	if err != nil {
		return err
	}

	decrypted, err := a.server.DecryptSubject(ctx, id)
	if err != nil {
		return err
	}
	return a.print(decrypted)
}

func (a *App) restore(ctx context.Context, args []string) error {
	id, err := subjectID(args)
	if err != nil {
		return err
	}
	return a.server.RestoreSubject(ctx, id)
}

func (a *App) retention(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}

	id, err := subjectID(args[:1])
	if err != nil {
		return err
	}

	var days *int
	if len(args) == 2 {
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return fmt.Errorf("%w: days: %w", ErrUsage, convErr)
		}
		days = &n
	}

	return a.server.SetRetention(ctx, id, days)
}

func (a *App) consent(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}

	id, err := subjectID(args[:1])
	if err != nil {
		return err
	}

	given, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("%w: consent: %w", ErrUsage, err)
	}

	return a.server.SetConsent(ctx, id, given)
}

func (a *App) expired(ctx context.Context, _ []string) error {
	expired, err := a.server.ListExpired(ctx)
	if err != nil {
		return err
	}
	if expired == nil {
		expired = []models.ExpiredSubject{}
	}
	return a.print(models.ExpiredResponse{Expired: expired, Length: len(expired)})
}

func (a *App) purge(ctx context.Context, _ []string) error {
	n, err := a.server.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	return a.print(models.CountResponse{Count: n})
}

func (a *App) audit(ctx context.Context, args []string) error {
	var limit int

	fs := newFlagSet("audit")
	fs.IntVar(&limit, "limit", 0, "maximum number of entries, 0 for all")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	entries, err := a.server.AuditLog(ctx, limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	return a.print(models.AuditLogResponse{Entries: entries, Length: len(entries)})
}

func (a *App) export(ctx context.Context, args []string) error {
	var path string

	fs := newFlagSet("export")
	fs.StringVar(&path, "o", "", "output file, stdout when empty")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if path == "" {
		return a.server.ExportAuditLog(ctx, a.out)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}

	if err = a.server.ExportAuditLog(ctx, f); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	_, err = fmt.Fprintf(a.out, "audit log exported to %s\n", path)
	return err
}

func (a *App) activity(ctx context.Context, args []string) error {
	var days int

	fs := newFlagSet("activity")
	fs.IntVar(&days, "days", 7, "number of days ending today")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	stats, err := a.server.ActivityStats(ctx, days)
	if err != nil {
		return err
	}
	return a.print(stats)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func subjectID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, ErrUsage
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: subject id must be a positive integer", ErrUsage)
	}
	return id, nil
}
