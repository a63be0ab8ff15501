package db

import (
	"context"
	"fmt"
	"net"
	"strings"

	"lingye.co/catalog/internal/globaltime"
)

// CreateInquiry stores a website inquiry. Status and source are forced to
// their intake values and an unparseable IP is dropped.
func (p *Pool) CreateInquiry(ctx context.Context, inquiry *Inquiry) error {
	gdb, err := p.session(ctx)
	if err != nil {
		return err
	}

	prepareInquiry(inquiry)
	if err := gdb.Create(inquiry).Error; err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	return nil
}

func prepareInquiry(inquiry *Inquiry) {
	inquiry.Status = InquiryStatusNew
	inquiry.Source = InquirySourceWebsite
	inquiry.Reply = ""
	inquiry.RepliedAt = nil
	if inquiry.IPAddress != nil {
		ip := net.ParseIP(strings.TrimSpace(*inquiry.IPAddress))
		if ip == nil {
			inquiry.IPAddress = nil
		} else {
			normalized := ip.String()
			inquiry.IPAddress = &normalized
		}
	}
	now := globaltime.UTC()
	if inquiry.CreatedAt.IsZero() {
		inquiry.CreatedAt = now
	}
	inquiry.UpdatedAt = now
}
