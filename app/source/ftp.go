package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
)

const defaultFTPPort = "21"

// FTP retrieves catalog files from the supplier FTP server over a single
// session that is opened on first use.
type FTP struct {
	addr     string
	user     string
	password string
	dir      string
	timeout  time.Duration
	conn     *ftp.ServerConn
}

func NewFTP(host, user, password, dir string, timeout time.Duration) *FTP {
	return &FTP{
		addr:     ftpAddr(host),
		user:     user,
		password: password,
		dir:      dir,
		timeout:  timeout,
	}
}

func (f *FTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := f.connect(ctx)
	if err != nil {
		return nil, err
	}

	remotePath := f.remotePath(name)
	resp, err := conn.Retr(remotePath)
	if err != nil {
		f.drop()
		return nil, fmt.Errorf("failed to retrieve %s: %w", remotePath, err)
	}

	data, err := io.ReadAll(resp)
	closeErr := resp.Close()
	if err != nil {
		f.drop()
		return nil, fmt.Errorf("failed to read %s: %w", remotePath, err)
	}
	if closeErr != nil {
		f.drop()
		return nil, fmt.Errorf("failed to complete transfer of %s: %w", remotePath, closeErr)
	}

	return data, nil
}

func (f *FTP) Close() error {
	if f.conn == nil {
		return nil
	}
	err := f.conn.Quit()
	f.conn = nil
	return err
}

func (f *FTP) connect(ctx context.Context) (*ftp.ServerConn, error) {
	if f.conn != nil {
		return f.conn, nil
	}

	conn, err := ftp.Dial(f.addr, ftp.DialWithTimeout(f.timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", f.addr, err)
	}

	if err := conn.Login(f.user, f.password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("failed to log in to %s: %w", f.addr, err)
	}

	slog.Debug("FTP session opened", "addr", f.addr, "user", f.user)
	f.conn = conn
	return conn, nil
}

// drop discards a session that failed mid transfer so the next file dials again.
func (f *FTP) drop() {
	if f.conn == nil {
		return
	}
	_ = f.conn.Quit()
	f.conn = nil
}

func (f *FTP) remotePath(name string) string {
	return path.Join("/", f.dir, name)
}

func ftpAddr(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, defaultFTPPort)
}
