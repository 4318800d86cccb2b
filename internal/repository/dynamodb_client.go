package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"rental-assistant/internal/domain"
)

// DefaultRetention is the sliding window after the last append before a
// conversation becomes eligible for expiry.
const DefaultRetention = 30 * 24 * time.Hour

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Client stores one item per conversation. Expiry is delegated to the
// table's native TTL on the "ttl" attribute; items past their TTL that
// DynamoDB has not swept yet are treated as absent.
type Client struct {
	api       dynamodbAPI
	tableName string
	retention time.Duration
	now       func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithRetention overrides DefaultRetention.
func WithRetention(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retention = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string, opts ...Option) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	c := &Client{api: api, tableName: tableName, retention: DefaultRetention, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Attribute names. ttl and a few others are DynamoDB reserved words, so
// every expression goes through ExpressionAttributeNames.
const (
	attrPK          = "PK"
	attrID          = "conversationId"
	attrOwner       = "ownerUserId"
	attrAnonymous   = "anonymousSessionId"
	attrRole        = "callerRole"
	attrLocale      = "locale"
	attrMessages    = "messages"
	attrExpiresAt   = "expiresAt"
	attrTTL         = "ttl"
	attrVersion     = "version"
	attrSpeaker     = "speaker"
	attrText        = "text"
	attrTimestamp   = "timestamp"
	attrSuggestions = "suggestions"
	attrIntent      = "intent"
)

var exprNames = map[string]string{
	"#pk":   attrPK,
	"#msgs": attrMessages,
	"#loc":  attrLocale,
	"#exp":  attrExpiresAt,
	"#ttl":  attrTTL,
	"#ver":  attrVersion,
}

func key(id domain.Identity) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{attrPK: &types.AttributeValueMemberS{Value: id.Key()}}
}

// FindOrCreate returns the live conversation for id, creating an empty one
// if none exists. Concurrent calls for one identity converge on one record.
func (c *Client) FindOrCreate(ctx context.Context, id domain.Identity, role domain.CallerRole) (domain.Conversation, error) {
	conv, err := c.Get(ctx, id)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, domain.ErrConversationNotFound) {
		return domain.Conversation{}, fmt.Errorf("repository: FindOrCreate: %w", err)
	}

	now := c.now().UTC()
	conv = domain.Conversation{
		ID:         uuid.NewString(),
		Identity:   id,
		CallerRole: role,
		Locale:     domain.BaseLocale,
		Messages:   []domain.Message{},
		ExpiresAt:  now.Add(c.retention),
		Version:    0,
	}
	_, err = c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(c.tableName),
		Item:                     conversationItem(conv),
		ConditionExpression:      aws.String("attribute_not_exists(#pk) OR #ttl < :now"),
		ExpressionAttributeNames: map[string]string{"#pk": attrPK, "#ttl": attrTTL},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": numberAttr(now.Unix()),
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			// Lost the creation race; the winner's record is the conversation.
			conv, err = c.Get(ctx, id)
			if err != nil {
				return domain.Conversation{}, fmt.Errorf("repository: FindOrCreate reread: %w", err)
			}
			return conv, nil
		}
		return domain.Conversation{}, fmt.Errorf("repository: FindOrCreate put: %w", err)
	}
	return conv, nil
}

// Get returns the live conversation for id or domain.ErrConversationNotFound.
func (c *Client) Get(ctx context.Context, id domain.Identity) (domain.Conversation, error) {
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.tableName),
		Key:            key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("repository: Get: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.Conversation{}, domain.ErrConversationNotFound
	}
	conv, err := itemToConversation(out.Item)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("repository: Get decode: %w", err)
	}
	if conv.Expired(c.now()) {
		return domain.Conversation{}, domain.ErrConversationNotFound
	}
	return conv, nil
}

// Append adds msgs to the end of the transcript in a single write, sets the
// sticky locale and slides the expiry to now + retention. The write only
// applies if the stored version still equals expectedVersion; otherwise
// domain.ErrVersionConflict is returned and nothing changes.
func (c *Client) Append(ctx context.Context, id domain.Identity, expectedVersion int, locale domain.Locale, msgs ...domain.Message) (domain.Conversation, error) {
	if len(msgs) == 0 {
		return domain.Conversation{}, errors.New("repository: Append: no messages")
	}
	now := c.now().UTC()
	expires := now.Add(c.retention)

	list := make([]types.AttributeValue, 0, len(msgs))
	for _, m := range msgs {
		list = append(list, messageAttr(m))
	}

	out, err := c.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(c.tableName),
		Key:                      key(id),
		UpdateExpression:         aws.String("SET #msgs = list_append(#msgs, :msgs), #loc = :loc, #exp = :exp, #ttl = :ttl, #ver = #ver + :one"),
		ConditionExpression:      aws.String("attribute_exists(#pk) AND #ver = :expected AND #ttl >= :now"),
		ExpressionAttributeNames: exprNames,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":msgs":     &types.AttributeValueMemberL{Value: list},
			":loc":      &types.AttributeValueMemberS{Value: string(locale)},
			":exp":      &types.AttributeValueMemberS{Value: expires.Format(time.RFC3339Nano)},
			":ttl":      numberAttr(expires.Unix()),
			":one":      numberAttr(1),
			":expected": numberAttr(int64(expectedVersion)),
			":now":      numberAttr(now.Unix()),
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return domain.Conversation{}, domain.ErrVersionConflict
		}
		return domain.Conversation{}, fmt.Errorf("repository: Append: %w", err)
	}
	conv, err := itemToConversation(out.Attributes)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("repository: Append decode: %w", err)
	}
	return conv, nil
}

// Clear empties the transcript of a live conversation, keeping its id,
// locale and expiry.
func (c *Client) Clear(ctx context.Context, id domain.Identity) error {
	_, err := c.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(c.tableName),
		Key:                      key(id),
		UpdateExpression:         aws.String("SET #msgs = :empty, #ver = #ver + :one"),
		ConditionExpression:      aws.String("attribute_exists(#pk) AND #ttl >= :now"),
		ExpressionAttributeNames: map[string]string{"#pk": attrPK, "#msgs": attrMessages, "#ver": attrVersion, "#ttl": attrTTL},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":one":   numberAttr(1),
			":now":   numberAttr(c.now().Unix()),
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return domain.ErrConversationNotFound
		}
		return fmt.Errorf("repository: Clear: %w", err)
	}
	return nil
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func conversationItem(conv domain.Conversation) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		attrPK:        &types.AttributeValueMemberS{Value: conv.Identity.Key()},
		attrID:        &types.AttributeValueMemberS{Value: conv.ID},
		attrRole:      &types.AttributeValueMemberS{Value: string(conv.CallerRole)},
		attrLocale:    &types.AttributeValueMemberS{Value: string(conv.Locale)},
		attrMessages:  &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		attrExpiresAt: &types.AttributeValueMemberS{Value: conv.ExpiresAt.UTC().Format(time.RFC3339Nano)},
		attrTTL:       numberAttr(conv.ExpiresAt.Unix()),
		attrVersion:   numberAttr(int64(conv.Version)),
	}
	switch id := conv.Identity.(type) {
	case domain.AuthenticatedIdentity:
		item[attrOwner] = &types.AttributeValueMemberS{Value: id.UserID}
	case domain.AnonymousIdentity:
		item[attrAnonymous] = &types.AttributeValueMemberS{Value: id.SessionID}
	}
	return item
}

func messageAttr(m domain.Message) types.AttributeValue {
	suggestions := make([]types.AttributeValue, 0, len(m.Suggestions))
	for _, s := range m.Suggestions {
		suggestions = append(suggestions, &types.AttributeValueMemberS{Value: s})
	}
	fields := map[string]types.AttributeValue{
		attrSpeaker:     &types.AttributeValueMemberS{Value: string(m.Speaker)},
		attrText:        &types.AttributeValueMemberS{Value: m.Text},
		attrTimestamp:   &types.AttributeValueMemberS{Value: m.Timestamp.UTC().Format(time.RFC3339Nano)},
		attrSuggestions: &types.AttributeValueMemberL{Value: suggestions},
	}
	if m.Intent != "" {
		fields[attrIntent] = &types.AttributeValueMemberS{Value: m.Intent}
	}
	return &types.AttributeValueMemberM{Value: fields}
}

// itemToConversation converts a DynamoDB attribute map to a Conversation.
func itemToConversation(item map[string]types.AttributeValue) (domain.Conversation, error) {
	id, err := strAttr(item, attrID)
	if err != nil {
		return domain.Conversation{}, err
	}
	identity, err := identityFromItem(item)
	if err != nil {
		return domain.Conversation{}, err
	}
	role, err := strAttr(item, attrRole)
	if err != nil {
		return domain.Conversation{}, err
	}
	locale, err := strAttr(item, attrLocale)
	if err != nil {
		return domain.Conversation{}, err
	}
	expiresRaw, err := strAttr(item, attrExpiresAt)
	if err != nil {
		return domain.Conversation{}, err
	}
	expires, err := time.Parse(time.RFC3339Nano, expiresRaw)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("repository: parse attribute %q: %w", attrExpiresAt, err)
	}
	version, err := intAttr(item, attrVersion)
	if err != nil {
		return domain.Conversation{}, err
	}

	msgs := []domain.Message{}
	if raw, ok := item[attrMessages].(*types.AttributeValueMemberL); ok {
		for i, v := range raw.Value {
			m, ok := v.(*types.AttributeValueMemberM)
			if !ok {
				return domain.Conversation{}, fmt.Errorf("repository: message %d is not a map", i)
			}
			msg, err := attrToMessage(m.Value)
			if err != nil {
				return domain.Conversation{}, fmt.Errorf("repository: message %d: %w", i, err)
			}
			msgs = append(msgs, msg)
		}
	}

	return domain.Conversation{
		ID:         id,
		Identity:   identity,
		CallerRole: domain.CallerRole(role),
		Locale:     domain.Locale(locale),
		Messages:   msgs,
		ExpiresAt:  expires,
		Version:    version,
	}, nil
}

func identityFromItem(item map[string]types.AttributeValue) (domain.Identity, error) {
	if owner, err := strAttr(item, attrOwner); err == nil && owner != "" {
		return domain.AuthenticatedIdentity{UserID: owner}, nil
	}
	if session, err := strAttr(item, attrAnonymous); err == nil && session != "" {
		return domain.AnonymousIdentity{SessionID: session}, nil
	}
	return nil, fmt.Errorf("repository: item has neither %q nor %q", attrOwner, attrAnonymous)
}

func attrToMessage(fields map[string]types.AttributeValue) (domain.Message, error) {
	speaker, err := strAttr(fields, attrSpeaker)
	if err != nil {
		return domain.Message{}, err
	}
	text, err := strAttr(fields, attrText)
	if err != nil {
		return domain.Message{}, err
	}
	tsRaw, err := strAttr(fields, attrTimestamp)
	if err != nil {
		return domain.Message{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, tsRaw)
	if err != nil {
		return domain.Message{}, fmt.Errorf("repository: parse attribute %q: %w", attrTimestamp, err)
	}
	suggestions := []string{}
	if l, ok := fields[attrSuggestions].(*types.AttributeValueMemberL); ok {
		for _, v := range l.Value {
			if s, ok := v.(*types.AttributeValueMemberS); ok {
				suggestions = append(suggestions, s.Value)
			}
		}
	}
	intent, _ := strAttr(fields, attrIntent) // allow empty
	return domain.Message{
		Speaker:     domain.Speaker(speaker),
		Text:        text,
		Timestamp:   ts,
		Suggestions: suggestions,
		Intent:      intent,
	}, nil
}

func numberAttr(n int64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func intAttr(item map[string]types.AttributeValue, key string) (int, error) {
	v, ok := item[key]
	if !ok {
		return 0, fmt.Errorf("repository: missing attribute %q", key)
	}
	n, ok := v.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("repository: attribute %q is not a number", key)
	}
	parsed, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}
