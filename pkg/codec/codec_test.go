package codec

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/mesos/mesos-go/api/v0/mesosproto"
	"github.com/mesos/mesos-go/api/v0/mesosutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// truncated is a length-delimited field header with the length and body
// missing entirely.
var truncated = []byte{0x0a}

// garbage is not a valid protobuf tag for any schema.
var garbage = []byte{0xff, 0xff, 0xff}

func roundTrip(t *testing.T, msg proto.Message, into proto.Message) {
	t.Helper()
	data, err := Encode(msg)
	require.NoError(t, err)
	require.Equal(t, proto.Size(msg), len(data))
	require.NoError(t, Decode(data, into))
	assert.True(t, proto.Equal(msg, into), "round-trip of %T changed the message", msg)
}

func TestRoundTrip(t *testing.T) {
	frameworkID := mesosutil.NewFrameworkID("framework-1")
	offerID := mesosutil.NewOfferID("offer-1")
	slaveID := mesosutil.NewSlaveID("slave-1")
	executorID := mesosutil.NewExecutorID("executor-1")
	taskID := mesosutil.NewTaskID("task-1")
	resources := []*mesosproto.Resource{mesosutil.NewScalarResource("cpus", 0.5)}

	for _, tc := range []struct {
		name string
		msg  proto.Message
		into proto.Message
	}{
		{"FrameworkID", frameworkID, &mesosproto.FrameworkID{}},
		{"OfferID", offerID, &mesosproto.OfferID{}},
		{"SlaveID", slaveID, &mesosproto.SlaveID{}},
		{"ExecutorID", executorID, &mesosproto.ExecutorID{}},
		{"TaskID", taskID, &mesosproto.TaskID{}},
		{
			"FrameworkInfo",
			mesosutil.NewFrameworkInfo("nobody", "bridge-test", frameworkID),
			&mesosproto.FrameworkInfo{},
		},
		{
			"Credential",
			&mesosproto.Credential{Principal: proto.String("principal"), Secret: proto.String("secret")},
			&mesosproto.Credential{},
		},
		{
			"MasterInfo",
			mesosutil.NewMasterInfo("master-1", 0x7f000001, 5050),
			&mesosproto.MasterInfo{},
		},
		{
			"Offer",
			mesosutil.NewOffer(offerID, frameworkID, slaveID, "slave-host-1"),
			&mesosproto.Offer{},
		},
		{
			"Offer.Operation",
			&mesosproto.Offer_Operation{Type: mesosproto.Offer_Operation_LAUNCH.Enum()},
			&mesosproto.Offer_Operation{},
		},
		{
			"TaskInfo",
			mesosutil.NewTaskInfo("task", taskID, slaveID, resources),
			&mesosproto.TaskInfo{},
		},
		{
			"TaskStatus",
			mesosutil.NewTaskStatus(taskID, mesosproto.TaskState_TASK_RUNNING),
			&mesosproto.TaskStatus{},
		},
		{
			"Filters",
			&mesosproto.Filters{RefuseSeconds: proto.Float64(5)},
			&mesosproto.Filters{},
		},
		{
			"Request",
			&mesosproto.Request{SlaveId: slaveID, Resources: resources},
			&mesosproto.Request{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			roundTrip(t, tc.msg, tc.into)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"truncated", truncated},
		{"garbage", garbage},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// OfferID requires a value, so even an empty payload is not a
			// well-formed instance.
			assert.Error(t, Decode(tc.data, &mesosproto.OfferID{}))
		})
	}
}

func TestDecodeDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = Decode(garbage, &mesosproto.TaskStatus{})
	})
}

func TestDecodeSlice(t *testing.T) {
	first, err := Encode(mesosutil.NewOfferID("offer-1"))
	require.NoError(t, err)
	second, err := Encode(mesosutil.NewOfferID("offer-2"))
	require.NoError(t, err)

	ids, err := DecodeSlice[mesosproto.OfferID]([][]byte{first, second})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "offer-1", ids[0].GetValue())
	assert.Equal(t, "offer-2", ids[1].GetValue())

	empty, err := DecodeSlice[mesosproto.OfferID](nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDecodeSliceAllOrNothing(t *testing.T) {
	first, err := Encode(mesosutil.NewOfferID("offer-1"))
	require.NoError(t, err)
	third, err := Encode(mesosutil.NewOfferID("offer-3"))
	require.NoError(t, err)

	ids, err := DecodeSlice[mesosproto.OfferID]([][]byte{first, garbage, third})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "element 1 of 3")
	assert.Nil(t, ids)
}
