package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"rental-assistant/internal/domain"
)

type fakeDynamo struct {
	getOuts      []*dynamodb.GetItemOutput
	getErr       error
	getCalls     int
	putErr       error
	updateOut    *dynamodb.UpdateItemOutput
	updateErr    error
	lastGetInput *dynamodb.GetItemInput
	lastPutInput *dynamodb.PutItemInput
	lastUpdateIn *dynamodb.UpdateItemInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.lastGetInput = in
	if f.getErr != nil {
		return nil, f.getErr
	}
	idx := f.getCalls
	f.getCalls++
	if len(f.getOuts) == 0 {
		return &dynamodb.GetItemOutput{}, nil
	}
	if idx >= len(f.getOuts) {
		idx = len(f.getOuts) - 1
	}
	return f.getOuts[idx], nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPutInput = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.lastUpdateIn = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateOut, nil
}

var (
	fixedNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	anonymous = domain.AnonymousIdentity{SessionID: "sess-1"}
	signedIn  = domain.AuthenticatedIdentity{UserID: "user-1"}
)

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func storedConversation(id domain.Identity, version int, expires time.Time, msgs ...domain.Message) map[string]types.AttributeValue {
	item := conversationItem(domain.Conversation{
		ID:         "conv-1",
		Identity:   id,
		CallerRole: domain.RoleGuest,
		Locale:     domain.LocaleHindi,
		ExpiresAt:  expires,
		Version:    version,
	})
	list := make([]types.AttributeValue, 0, len(msgs))
	for _, m := range msgs {
		list = append(list, messageAttr(m))
	}
	item[attrMessages] = &types.AttributeValueMemberL{Value: list}
	return item
}

func mustNewClient(t *testing.T, db *fakeDynamo) *Client {
	t.Helper()
	c, err := New(db, "test-table", WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return c
}

func TestGet_HappyPath(t *testing.T) {
	msgs := []domain.Message{
		domain.CallerMessage("hello", fixedNow),
		domain.EngineMessage("Hello!", "greeting", []string{"Find a room"}, fixedNow),
	}
	db := &fakeDynamo{getOuts: []*dynamodb.GetItemOutput{{Item: storedConversation(anonymous, 2, fixedNow.Add(time.Hour), msgs...)}}}
	c := mustNewClient(t, db)

	conv, err := c.Get(context.Background(), anonymous)
	require.NoError(t, err)
	require.Equal(t, "conv-1", conv.ID)
	require.Equal(t, anonymous, conv.Identity)
	require.Equal(t, domain.LocaleHindi, conv.Locale)
	require.Equal(t, 2, conv.Version)
	require.Len(t, conv.Messages, 2)
	require.Equal(t, domain.SpeakerCaller, conv.Messages[0].Speaker)
	require.Empty(t, conv.Messages[0].Suggestions)
	require.Equal(t, "greeting", conv.Messages[1].Intent)
	require.Equal(t, []string{"Find a room"}, conv.Messages[1].Suggestions)
	require.True(t, *db.lastGetInput.ConsistentRead)
	require.Equal(t, "ANON#sess-1", db.lastGetInput.Key[attrPK].(*types.AttributeValueMemberS).Value)
}

func TestGet_Missing(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{})
	_, err := c.Get(context.Background(), anonymous)
	require.ErrorIs(t, err, domain.ErrConversationNotFound)
}

func TestGet_ExpiredButNotSwept(t *testing.T) {
	db := &fakeDynamo{getOuts: []*dynamodb.GetItemOutput{{Item: storedConversation(anonymous, 0, fixedNow.Add(-time.Second))}}}
	c := mustNewClient(t, db)
	_, err := c.Get(context.Background(), anonymous)
	require.ErrorIs(t, err, domain.ErrConversationNotFound)
}

func TestGet_Error(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{getErr: errors.New("boom")})
	_, err := c.Get(context.Background(), anonymous)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrConversationNotFound)
	require.Contains(t, err.Error(), "Get")
}

func TestGet_MalformedItem(t *testing.T) {
	item := storedConversation(anonymous, 0, fixedNow.Add(time.Hour))
	delete(item, attrAnonymous)
	c := mustNewClient(t, &fakeDynamo{getOuts: []*dynamodb.GetItemOutput{{Item: item}}})
	_, err := c.Get(context.Background(), anonymous)
	require.ErrorContains(t, err, "neither")
}

func TestFindOrCreate_ReturnsExisting(t *testing.T) {
	db := &fakeDynamo{getOuts: []*dynamodb.GetItemOutput{{Item: storedConversation(signedIn, 4, fixedNow.Add(time.Hour))}}}
	c := mustNewClient(t, db)

	conv, err := c.FindOrCreate(context.Background(), signedIn, domain.RoleStudent)
	require.NoError(t, err)
	require.Equal(t, "conv-1", conv.ID)
	require.Equal(t, 4, conv.Version)
	require.Nil(t, db.lastPutInput, "no write for an existing record")
}

func TestFindOrCreate_CreatesNew(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)

	conv, err := c.FindOrCreate(context.Background(), signedIn, domain.RoleLandlord)
	require.NoError(t, err)
	require.NotEmpty(t, conv.ID)
	require.Equal(t, domain.RoleLandlord, conv.CallerRole)
	require.Equal(t, domain.BaseLocale, conv.Locale)
	require.Empty(t, conv.Messages)
	require.Equal(t, fixedNow.Add(DefaultRetention), conv.ExpiresAt)

	put := db.lastPutInput
	require.NotNil(t, put)
	require.Equal(t, "attribute_not_exists(#pk) OR #ttl < :now", *put.ConditionExpression)
	require.Equal(t, "USER#user-1", put.Item[attrPK].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "user-1", put.Item[attrOwner].(*types.AttributeValueMemberS).Value)
	require.NotContains(t, put.Item, attrAnonymous)
}

func TestFindOrCreate_LostRaceRereadsWinner(t *testing.T) {
	db := &fakeDynamo{
		getOuts: []*dynamodb.GetItemOutput{
			{},
			{Item: storedConversation(anonymous, 0, fixedNow.Add(time.Hour))},
		},
		putErr: conditionFailed(),
	}
	c := mustNewClient(t, db)

	conv, err := c.FindOrCreate(context.Background(), anonymous, domain.RoleGuest)
	require.NoError(t, err)
	require.Equal(t, "conv-1", conv.ID)
	require.Equal(t, 2, db.getCalls)
}

func TestFindOrCreate_PutError(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{putErr: errors.New("ProvisionedThroughputExceededException")})
	_, err := c.FindOrCreate(context.Background(), anonymous, domain.RoleGuest)
	require.ErrorContains(t, err, "FindOrCreate put")
}

func TestAppend_HappyPath(t *testing.T) {
	caller := domain.CallerMessage("under 10000", fixedNow)
	engine := domain.EngineMessage("Looking for rooms", "budget", []string{"Under 5000"}, fixedNow)
	db := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
		Attributes: storedConversation(anonymous, 3, fixedNow.Add(DefaultRetention), caller, engine),
	}}
	c := mustNewClient(t, db)

	conv, err := c.Append(context.Background(), anonymous, 2, domain.LocaleEnglish, caller, engine)
	require.NoError(t, err)
	require.Equal(t, 3, conv.Version)
	require.Len(t, conv.Messages, 2)

	in := db.lastUpdateIn
	require.Equal(t, "SET #msgs = list_append(#msgs, :msgs), #loc = :loc, #exp = :exp, #ttl = :ttl, #ver = #ver + :one", *in.UpdateExpression)
	require.Equal(t, "attribute_exists(#pk) AND #ver = :expected AND #ttl >= :now", *in.ConditionExpression)
	require.Equal(t, "2", in.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value)
	require.Len(t, in.ExpressionAttributeValues[":msgs"].(*types.AttributeValueMemberL).Value, 2)
	require.Equal(t, "en", in.ExpressionAttributeValues[":loc"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, types.ReturnValueAllNew, in.ReturnValues)
}

func TestAppend_RefreshesExpiry(t *testing.T) {
	db := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
		Attributes: storedConversation(anonymous, 1, fixedNow.Add(time.Hour)),
	}}
	c, err := New(db, "test-table", WithClock(func() time.Time { return fixedNow }), WithRetention(48*time.Hour))
	require.NoError(t, err)

	_, err = c.Append(context.Background(), anonymous, 0, domain.LocaleEnglish, domain.CallerMessage("hi", fixedNow))
	require.NoError(t, err)

	want := fixedNow.Add(48 * time.Hour)
	vals := db.lastUpdateIn.ExpressionAttributeValues
	require.Equal(t, want.Format(time.RFC3339Nano), vals[":exp"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, numberAttr(want.Unix()).Value, vals[":ttl"].(*types.AttributeValueMemberN).Value)
}

func TestAppend_VersionConflict(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{updateErr: conditionFailed()})
	_, err := c.Append(context.Background(), anonymous, 1, domain.LocaleEnglish, domain.CallerMessage("hi", fixedNow))
	require.ErrorIs(t, err, domain.ErrVersionConflict)
}

func TestAppend_DynamoError(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{updateErr: errors.New("internal server error")})
	_, err := c.Append(context.Background(), anonymous, 1, domain.LocaleEnglish, domain.CallerMessage("hi", fixedNow))
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrVersionConflict)
	require.Contains(t, err.Error(), "Append")
}

func TestAppend_NoMessages(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{})
	_, err := c.Append(context.Background(), anonymous, 0, domain.LocaleEnglish)
	require.ErrorContains(t, err, "no messages")
}

func TestClear_HappyPath(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)
	require.NoError(t, c.Clear(context.Background(), anonymous))
	require.Equal(t, "SET #msgs = :empty, #ver = #ver + :one", *db.lastUpdateIn.UpdateExpression)
	require.Empty(t, db.lastUpdateIn.ExpressionAttributeValues[":empty"].(*types.AttributeValueMemberL).Value)
	require.NotContains(t, *db.lastUpdateIn.UpdateExpression, "#loc", "clear keeps the sticky locale")
}

func TestClear_Missing(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{updateErr: conditionFailed()})
	require.ErrorIs(t, c.Clear(context.Background(), anonymous), domain.ErrConversationNotFound)
}

func TestClear_DynamoError(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{updateErr: errors.New("boom")})
	err := c.Clear(context.Background(), anonymous)
	require.ErrorContains(t, err, "Clear")
}

func TestMessageRoundTripPreservesIntentAndOrder(t *testing.T) {
	ts := fixedNow.Add(1500 * time.Millisecond)
	msgs := []domain.Message{
		domain.CallerMessage("**bold**\nline", ts),
		domain.EngineMessage("reply", "", nil, ts),
	}
	conv, err := itemToConversation(storedConversation(anonymous, 0, fixedNow, msgs...))
	require.NoError(t, err)
	require.Equal(t, "**bold**\nline", conv.Messages[0].Text)
	require.True(t, ts.Equal(conv.Messages[0].Timestamp))
	require.Empty(t, conv.Messages[1].Intent)
	require.NotNil(t, conv.Messages[1].Suggestions)
}

func TestIntAttr_Malformed(t *testing.T) {
	_, err := intAttr(map[string]types.AttributeValue{"version": &types.AttributeValueMemberS{Value: "bad"}}, "version")
	require.ErrorContains(t, err, "not a number")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil, "test-table")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}

func TestNew_EmptyTableName(t *testing.T) {
	_, err := New(&fakeDynamo{}, " ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be empty")
}
