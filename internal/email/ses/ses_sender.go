package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"beanvault/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendParseFailure(ctx context.Context, toEmail string, notice port.ParseFailureNotice) error {
	subject := fmt.Sprintf("Price list parse failed: %s", notice.FileName)
	htmlBody := buildParseFailureHTML(notice)
	textBody := fmt.Sprintf(
		"Price list parsing has given up after %d attempts.\n\nProvider: %s\nFile: %s\nLast error:\n%s\n\nRe-upload the file or fix the source document and try again.",
		notice.Attempts, notice.Provider, notice.FileName, notice.LastError)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildParseFailureHTML(notice port.ParseFailureNotice) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Price list parse failed</h2>
  <p>Parsing has given up after %d attempts.</p>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Provider</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">File</td><td>%s</td></tr>
  </table>
  <p>Last error:</p>
  <pre style="background: #f5f5f5; padding: 12px; border-radius: 6px; white-space: pre-wrap;">%s</pre>
  <p>Re-upload the file or fix the source document and try again.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">BeanVault - Coffee Price Catalog</p>
</body>
</html>`,
		notice.Attempts,
		html.EscapeString(notice.Provider),
		html.EscapeString(notice.FileName),
		html.EscapeString(notice.LastError))
}
