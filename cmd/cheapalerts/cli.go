package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Abraxas-365/cheapalerts/pkg/config"
	"github.com/Abraxas-365/cheapalerts/pkg/errx"
	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/Abraxas-365/cheapalerts/pkg/pollx"
	"github.com/Abraxas-365/cheapalerts/pkg/pollx/pollxredis"
	"github.com/Abraxas-365/cheapalerts/pkg/smsx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	carrier      string
	number       string
	from         string
	domain       string
	message      string
	configPath   string
	verbose      bool
	listCarriers bool

	watchKey  string
	redisAddr string
	interval  time.Duration
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := pflag.NewFlagSet("cheapalerts", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: cheapalerts -c <carrier> -n <number> [-f <from>] [-d <smtp domain>] <message>")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	fs.StringVarP(&o.carrier, "carrier", "c", "", "carrier tag (att, verizon, ...) or gateway domain")
	fs.StringVarP(&o.number, "number", "n", "", "destination phone number")
	fs.StringVarP(&o.from, "from", "f", "", "from email address")
	fs.StringVarP(&o.domain, "domain", "d", "", "SMTP server domain; uses STARTTLS on port 587")
	fs.StringVarP(&o.message, "message", "m", "", "message text (alternative to the positional argument)")
	fs.StringVar(&o.configPath, "config", "", "YAML config file describing the sender")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVar(&o.listCarriers, "list-carriers", false, "print known carrier tags and exit")
	fs.StringVar(&o.watchKey, "watch", "", "poll this Redis key and text every status change")
	fs.StringVar(&o.redisAddr, "redis-addr", "localhost:6379", "Redis address for --watch")
	fs.DurationVar(&o.interval, "interval", time.Second, "poll interval for --watch")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.listCarriers {
		return o, nil
	}

	switch n := fs.NArg(); {
	case n > 1:
		return nil, fmt.Errorf("expected a single message argument, got %d (quote the message)", n)
	case n == 1 && o.message != "":
		return nil, errors.New("message given both with --message and as an argument")
	case n == 1:
		o.message = fs.Arg(0)
	}

	var missing []string
	if o.carrier == "" {
		missing = append(missing, "--carrier")
	}
	if o.number == "" {
		missing = append(missing, "--number")
	}
	if o.message == "" && o.watchKey == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required %s", strings.Join(missing, ", "))
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseArgs(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logCfg := logx.LoadFromEnv()
	logCfg.Output = stderr
	if o.verbose {
		logCfg.Level = logx.LevelDebug
	}
	logx.SetDefaultLogger(logx.NewLogger(logCfg))

	if o.listCarriers {
		printCarriers(stdout)
		return exitOK
	}

	carrier := smsx.ParseCarrier(o.carrier)
	if carrier.IsOther() {
		logx.WithField("carrier", o.carrier).Warn("unknown carrier tag, using it as the gateway domain")
	}
	dest := smsx.NewDestination(o.number, carrier)

	sender, err := buildSender(ctx, o)
	if err != nil {
		return fail(stderr, err)
	}

	if o.watchKey != "" {
		if err := watch(ctx, o, sender, dest); err != nil {
			return fail(stderr, err)
		}
		return exitOK
	}

	if err := sender.SendTo(ctx, dest, o.message); err != nil {
		return fail(stderr, err)
	}
	return exitOK
}

// fail prints err, cause included, and returns the runtime-failure status.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, err)
	logx.WithFields(logx.Fields{
		"code": errx.CodeOf(err),
		"kind": smsx.KindOf(err).String(),
	}).Debug("cheapalerts: failed")
	return exitError
}

// buildSender layers flags over config.Load: -f replaces the from address and
// -d switches to STARTTLS submission on that domain.
func buildSender(ctx context.Context, o *options) (*smsx.Sender, error) {
	cfg, err := config.Load(o.configPath, flagOverride(o))
	if err != nil {
		return nil, err
	}

	logx.WithFields(logx.Fields{
		"transport": string(cfg.Transport.Kind),
		"from":      cfg.From,
	}).Debug("cheapalerts: building sender")

	return cfg.Sender(ctx)
}

func flagOverride(o *options) config.Override {
	return func(cfg *config.Config) {
		if o.from != "" {
			cfg.From = o.from
		}
		if o.domain != "" {
			cfg.Transport = config.Transport{Kind: config.KindSMTPSimple, Domain: o.domain}
		}
	}
}

func watch(ctx context.Context, o *options, sender *smsx.Sender, dest smsx.Destination) error {
	rdb := redis.NewClient(&redis.Options{Addr: o.redisAddr})
	defer rdb.Close()

	notify := func(ctx context.Context, prev, next string) error {
		return sender.SendTo(ctx, dest, statusMessage(o.message, prev, next))
	}

	p := pollx.New(pollxredis.Source(rdb, o.watchKey), notify, pollx.WithInterval(o.interval))

	logx.WithFields(logx.Fields{
		"key":   o.watchKey,
		"redis": o.redisAddr,
		"to":    dest.Address(),
	}).Info("cheapalerts: watching status")

	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func statusMessage(prefix, prev, next string) string {
	change := prev + " -> " + next
	if prefix == "" {
		return change
	}
	return prefix + ": " + change
}

func printCarriers(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tCARRIER\tGATEWAY")
	for _, c := range smsx.Carriers() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Tag(), c.Name(), c.Domain())
	}
	_ = tw.Flush()
}
