package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nPaBwaYT/desblock/codec"
	"github.com/nPaBwaYT/desblock/cripta"
	"github.com/nPaBwaYT/desblock/internal/core"
)

// session is everything a command needs once config and key are resolved.
type session struct {
	cfg       *core.Config
	log       *logrus.Logger
	roundKeys cripta.RoundKeys
	context   *cripta.CipherContext
	closeLog  func()
}

// Close releases the log file. Commands defer it right after newSession.
func (s *session) Close() {
	if s.closeLog != nil {
		s.closeLog()
	}
}

var (
	schedulesMu sync.Mutex
	// schedules is shared by every command run in this process, one cache
	// per parity setting.
	schedules = map[bool]*cripta.KeyScheduleCache{}
)

func scheduleCache(cfg *core.Config) *cripta.KeyScheduleCache {
	schedulesMu.Lock()
	defer schedulesMu.Unlock()

	c, ok := schedules[cfg.CheckParity]
	if !ok {
		c = cripta.NewKeyScheduleCache(&cripta.DESKeySchedule{CheckParity: cfg.CheckParity}, cfg.Cache.TTL)
		schedules[cfg.CheckParity] = c
	}
	return c
}

func newSession(cmd *cobra.Command) (_ *session, err error) {
	cfg, err := core.LoadConfig(configFlag, cmd.Flags())
	if err != nil {
		return nil, err
	}
	log, closeLog, err := core.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			closeLog()
		}
	}()

	key, err := parseKey(cfg)
	if err != nil {
		return nil, err
	}

	roundKeys, hit, err := scheduleCache(cfg).RoundKeys(key)
	if err != nil {
		return nil, fmt.Errorf("deriving round keys: %w", err)
	}
	log.WithField("cached", hit).Debug("round keys ready")

	padding, err := codec.PaddingByName(cfg.Padding)
	if err != nil {
		return nil, err
	}

	ctx, err := cripta.NewCipherContext(
		cripta.NewDESCipherFromRoundKeys(roundKeys),
		nil,
		padding,
		cripta.WithWorkers(cfg.Workers),
		cripta.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, log: log, roundKeys: roundKeys, context: ctx, closeLog: closeLog}, nil
}

func parseKey(cfg *core.Config) (cripta.Bits, error) {
	if cfg.Key == "" {
		return nil, fmt.Errorf("%w: no key given, use --key or DESBLOCK_KEY", cripta.ErrInvalidKey)
	}
	if strings.EqualFold(cfg.KeyFormat, "hex") {
		return codec.KeyFromHex(cfg.Key)
	}
	return codec.KeyFromText(cfg.Key)
}

func newEncryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt TEXT...",
		Short: "Encrypts each argument and prints it as hex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			for i, text := range args {
				plain, err := codec.TextToBits(text)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				ct, err := s.context.EncryptBits(plain)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				out, err := codec.ToHex(ct)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
}

func newDecryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt HEX...",
		Short: "Decrypts hex ciphertexts and prints the recovered text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			for i, h := range args {
				ct, err := codec.FromHex(h)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				plain, err := s.context.DecryptBits(ct)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				text, err := codec.BitsToText(plain)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}
}

func newKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Prints the 16 round keys derived from the key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			if dump, _ := cmd.Flags().GetBool("dump"); dump {
				fmt.Fprint(cmd.OutOrStdout(), spew.Sdump(s.roundKeys))
				return nil
			}
			for i, k := range s.roundKeys {
				fmt.Fprintf(cmd.OutOrStdout(), "K%-2d %s\n", i+1, k)
			}
			return nil
		},
	}
}

// Standard DES test vector.
const (
	selftestKey        = "133457799BBCDFF1"
	selftestPlaintext  = "0123456789abcdef"
	selftestCiphertext = "85e813540f0ab405"
)

var errSelftest = errors.New("selftest failed")

func runSelftest() error {
	key, err := codec.KeyFromHex(selftestKey)
	if err != nil {
		return err
	}
	plain, err := codec.FromHex(selftestPlaintext)
	if err != nil {
		return err
	}

	keys, err := cripta.DeriveRoundKeys(key)
	if err != nil {
		return err
	}
	ct, err := cripta.EncryptBlock(plain, keys)
	if err != nil {
		return err
	}
	got, err := codec.ToHex(ct)
	if err != nil {
		return err
	}
	if got != selftestCiphertext {
		return fmt.Errorf("%w: encrypt got %s, want %s", errSelftest, got, selftestCiphertext)
	}

	back, err := cripta.DecryptBlock(ct, keys)
	if err != nil {
		return err
	}
	if !back.Equal(plain) {
		return fmt.Errorf("%w: decrypt got %s, want %s", errSelftest, back, plain)
	}
	return nil
}

func newSelftestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Checks the cipher against the standard DES test vector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runSelftest(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s -> %s\n", selftestPlaintext, selftestCiphertext)
			return nil
		},
	}
}
