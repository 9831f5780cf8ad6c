package main

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/message"
	"github.com/enola-dev/enola-sub007/metric"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

type protoOptions struct {
	IRI       string
	JSON      bool
	FromThing bool
}

func newProtoCommand(a *app) *cobra.Command {
	var opts protoOptions

	cmd := &cobra.Command{
		Use:   "proto <descriptor-set> <type> <file>",
		Short: "Convert a protobuf message to a Thing document",
		Long: "Reads a message of the given full type name from file, using the schema\n" +
			"in a binary FileDescriptorSet (protoc --descriptor_set_out\n" +
			"--include_imports), and prints it as a Thing document.\n\n" +
			"With --from-thing the file is a Thing document instead and the message\n" +
			"is written to stdout.\n",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProto(cmd.Context(), args[0], protoreflect.FullName(args[1]), args[2], opts)
		},
	}
	cmd.Flags().StringVar(&opts.IRI, "iri", "", "IRI of the Thing; defaults to the file's file: URL")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Read or write the message as protobuf JSON instead of binary")
	cmd.Flags().BoolVar(&opts.FromThing, "from-thing", false, "Convert a Thing document to a message")
	return cmd
}

func (a *app) runProto(ctx context.Context, setPath string, typeName protoreflect.FullName, path string, opts protoOptions) error {
	set, err := os.ReadFile(setPath)
	if err != nil {
		return errors.WrapInvalid(err, "enola", "proto", "read descriptor set")
	}
	resolver, err := message.ParseDescriptorSet(set)
	if err != nil {
		return err
	}
	msg, err := resolver.NewMessage(typeName)
	if err != nil {
		return err
	}
	repo, err := a.datatypes()
	if err != nil {
		return err
	}
	codec := message.NewCodec(repo, resolver)
	m := a.registry.CoreMetrics()

	if opts.FromThing {
		t, err := readDocument(ctx, path)
		if err != nil {
			return err
		}
		started := time.Now()
		err = codec.FromThing(t, msg)
		m.RecordConversion("proto", metric.DirectionEncode, started, err)
		if err != nil {
			return err
		}
		var out []byte
		if opts.JSON {
			out, err = protojson.MarshalOptions{Multiline: true}.Marshal(msg)
		} else {
			out, err = proto.Marshal(msg)
		}
		if err != nil {
			return errors.WrapFatal(err, "enola", "proto", "marshal message")
		}
		_, err = a.out.Write(out)
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapInvalid(err, "enola", "proto", "read message")
	}
	if opts.JSON {
		err = protojson.Unmarshal(data, msg)
	} else {
		err = proto.Unmarshal(data, msg)
	}
	if err != nil {
		return errors.Invalidf(errors.ErrMalformedValue, "enola", "proto", "%s: %v", path, err)
	}

	iri := opts.IRI
	if iri == "" {
		if iri, err = fileURL(path); err != nil {
			return err
		}
	}
	started := time.Now()
	t, err := codec.ToThing(iri, msg)
	m.RecordConversion("proto", metric.DirectionDecode, started, err)
	if err != nil {
		return err
	}
	return a.writeThings([]thing.Thing{t})
}

func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.WrapInvalid(err, "enola", "fileURL", "resolve "+path)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
