// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	map4XviE1CYoSWgvVmNlb9AbAΞΞ   = ord.NewMapSer[string, string](ord.String, ord.String)
	slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ = ord.NewSliceSer[string](ord.String)
	sliceayJdnfdUJOFvcP9Jny2zFAΞΞ = ord.NewSliceSer[FileRef](FileRefMUS)
	slicefk0oqdXGn7TquΔvYoOKbUwΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var JobStatusMUS = jobStatusMUS{}

type jobStatusMUS struct{}

func (s jobStatusMUS) Marshal(v JobStatus, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s jobStatusMUS) Unmarshal(bs []byte) (v JobStatus, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = JobStatus(tmp)
	return
}

func (s jobStatusMUS) Size(v JobStatus) (size int) {
	return varint.Int.Size(int(v))
}

func (s jobStatusMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var DocumentStatusMUS = documentStatusMUS{}

type documentStatusMUS struct{}

func (s documentStatusMUS) Marshal(v DocumentStatus, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s documentStatusMUS) Unmarshal(bs []byte) (v DocumentStatus, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = DocumentStatus(tmp)
	return
}

func (s documentStatusMUS) Size(v DocumentStatus) (size int) {
	return varint.Int.Size(int(v))
}

func (s documentStatusMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var PayloadTypeMUS = payloadTypeMUS{}

type payloadTypeMUS struct{}

func (s payloadTypeMUS) Marshal(v PayloadType, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s payloadTypeMUS) Unmarshal(bs []byte) (v PayloadType, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = PayloadType(tmp)
	return
}

func (s payloadTypeMUS) Size(v PayloadType) (size int) {
	return varint.Int.Size(int(v))
}

func (s payloadTypeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var SourceTypeMUS = sourceTypeMUS{}

type sourceTypeMUS struct{}

func (s sourceTypeMUS) Marshal(v SourceType, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s sourceTypeMUS) Unmarshal(bs []byte) (v SourceType, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = SourceType(tmp)
	return
}

func (s sourceTypeMUS) Size(v SourceType) (size int) {
	return varint.Int.Size(int(v))
}

func (s sourceTypeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var StepStatusMUS = stepStatusMUS{}

type stepStatusMUS struct{}

func (s stepStatusMUS) Marshal(v StepStatus, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s stepStatusMUS) Unmarshal(bs []byte) (v StepStatus, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = StepStatus(tmp)
	return
}

func (s stepStatusMUS) Size(v StepStatus) (size int) {
	return varint.Int.Size(int(v))
}

func (s stepStatusMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var RunStatusMUS = runStatusMUS{}

type runStatusMUS struct{}

func (s runStatusMUS) Marshal(v RunStatus, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s runStatusMUS) Unmarshal(bs []byte) (v RunStatus, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = RunStatus(tmp)
	return
}

func (s runStatusMUS) Size(v RunStatus) (size int) {
	return varint.Int.Size(int(v))
}

func (s runStatusMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var FileRefMUS = fileRefMUS{}

type fileRefMUS struct{}

func (s fileRefMUS) Marshal(v FileRef, bs []byte) (n int) {
	n = ord.String.Marshal(v.Key, bs)
	return n + ord.String.Marshal(v.Name, bs[n:])
}

func (s fileRefMUS) Unmarshal(bs []byte) (v FileRef, n int, err error) {
	v.Key, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s fileRefMUS) Size(v FileRef) (size int) {
	size = ord.String.Size(v.Key)
	return size + ord.String.Size(v.Name)
}

func (s fileRefMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var PayloadMUS = payloadMUS{}

type payloadMUS struct{}

func (s payloadMUS) Marshal(v Payload, bs []byte) (n int) {
	n = PayloadTypeMUS.Marshal(v.Type, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += ord.String.Marshal(v.FileURL, bs[n:])
	n += ord.String.Marshal(v.Key, bs[n:])
	n += sliceayJdnfdUJOFvcP9Jny2zFAΞΞ.Marshal(v.Files, bs[n:])
	return n + slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Marshal(v.URLs, bs[n:])
}

func (s payloadMUS) Unmarshal(bs []byte) (v Payload, n int, err error) {
	v.Type, n, err = PayloadTypeMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FileURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Key, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Files, n1, err = sliceayJdnfdUJOFvcP9Jny2zFAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.URLs, n1, err = slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s payloadMUS) Size(v Payload) (size int) {
	size = PayloadTypeMUS.Size(v.Type)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Text)
	size += ord.String.Size(v.FileURL)
	size += ord.String.Size(v.Key)
	size += sliceayJdnfdUJOFvcP9Jny2zFAΞΞ.Size(v.Files)
	return size + slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Size(v.URLs)
}

func (s payloadMUS) Skip(bs []byte) (n int, err error) {
	n, err = PayloadTypeMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceayJdnfdUJOFvcP9Jny2zFAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Skip(bs[n:])
	n += n1
	return
}

var DocumentSourceMUS = documentSourceMUS{}

type documentSourceMUS struct{}

func (s documentSourceMUS) Marshal(v DocumentSource, bs []byte) (n int) {
	n = SourceTypeMUS.Marshal(v.Type, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += ord.String.Marshal(v.FileURL, bs[n:])
	return n + ord.String.Marshal(v.Key, bs[n:])
}

func (s documentSourceMUS) Unmarshal(bs []byte) (v DocumentSource, n int, err error) {
	v.Type, n, err = SourceTypeMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FileURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Key, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s documentSourceMUS) Size(v DocumentSource) (size int) {
	size = SourceTypeMUS.Size(v.Type)
	size += ord.String.Size(v.Text)
	size += ord.String.Size(v.FileURL)
	return size + ord.String.Size(v.Key)
}

func (s documentSourceMUS) Skip(bs []byte) (n int, err error) {
	n, err = SourceTypeMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var IngestJobMUS = ingestJobMUS{}

type ingestJobMUS struct{}

func (s ingestJobMUS) Marshal(v IngestJob, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.NamespaceId, bs[n:])
	n += ord.String.Marshal(v.TenantId, bs[n:])
	n += PayloadMUS.Marshal(v.Payload, bs[n:])
	n += JobStatusMUS.Marshal(v.Status, bs[n:])
	n += ord.String.Marshal(v.Error, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.QueuedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.PreProcessingAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.ProcessingAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.CompletedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.FailedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
	return n + slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Marshal(v.WorkflowRunsIds, bs[n:])
}

func (s ingestJobMUS) Unmarshal(bs []byte) (v IngestJob, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.NamespaceId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TenantId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Payload, n1, err = PayloadMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = JobStatusMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Error, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.QueuedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PreProcessingAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProcessingAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CompletedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FailedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.WorkflowRunsIds, n1, err = slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s ingestJobMUS) Size(v IngestJob) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.NamespaceId)
	size += ord.String.Size(v.TenantId)
	size += PayloadMUS.Size(v.Payload)
	size += JobStatusMUS.Size(v.Status)
	size += ord.String.Size(v.Error)
	size += raw.TimeUnixMicro.Size(v.QueuedAt)
	size += raw.TimeUnixMicro.Size(v.PreProcessingAt)
	size += raw.TimeUnixMicro.Size(v.ProcessingAt)
	size += raw.TimeUnixMicro.Size(v.CompletedAt)
	size += raw.TimeUnixMicro.Size(v.FailedAt)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	size += raw.TimeUnixMicro.Size(v.UpdatedAt)
	return size + slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Size(v.WorkflowRunsIds)
}

func (s ingestJobMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = PayloadMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = JobStatusMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Skip(bs[n:])
	n += n1
	return
}

var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (s documentMUS) Marshal(v Document, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.IngestJobId, bs[n:])
	n += IDMUS.Marshal(v.NamespaceId, bs[n:])
	n += ord.String.Marshal(v.TenantId, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += DocumentSourceMUS.Marshal(v.Source, bs[n:])
	n += DocumentStatusMUS.Marshal(v.Status, bs[n:])
	n += varint.Int.Marshal(v.TotalChunks, bs[n:])
	n += varint.Int.Marshal(v.TotalTokens, bs[n:])
	n += varint.Int.Marshal(v.TotalCharacters, bs[n:])
	n += varint.Int.Marshal(v.TotalPages, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
	return n + slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Marshal(v.WorkflowRunsIds, bs[n:])
}

func (s documentMUS) Unmarshal(bs []byte) (v Document, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.IngestJobId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NamespaceId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TenantId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = DocumentSourceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = DocumentStatusMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalChunks, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalTokens, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalCharacters, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalPages, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.WorkflowRunsIds, n1, err = slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s documentMUS) Size(v Document) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.IngestJobId)
	size += IDMUS.Size(v.NamespaceId)
	size += ord.String.Size(v.TenantId)
	size += ord.String.Size(v.Name)
	size += DocumentSourceMUS.Size(v.Source)
	size += DocumentStatusMUS.Size(v.Status)
	size += varint.Int.Size(v.TotalChunks)
	size += varint.Int.Size(v.TotalTokens)
	size += varint.Int.Size(v.TotalCharacters)
	size += varint.Int.Size(v.TotalPages)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	size += raw.TimeUnixMicro.Size(v.UpdatedAt)
	return size + slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Size(v.WorkflowRunsIds)
}

func (s documentMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = DocumentSourceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = DocumentStatusMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicePfΣGΔzUg2VG9pwxJhM0ΣiAΞΞ.Skip(bs[n:])
	n += n1
	return
}

var NamespaceMUS = namespaceMUS{}

type namespaceMUS struct{}

func (s namespaceMUS) Marshal(v Namespace, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.OrganizationId, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.EmbeddingModel, bs[n:])
	n += varint.Int.Marshal(v.TotalDocuments, bs[n:])
	n += varint.Int.Marshal(v.TotalIngestJobs, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s namespaceMUS) Unmarshal(bs []byte) (v Namespace, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.OrganizationId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EmbeddingModel, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalDocuments, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalIngestJobs, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s namespaceMUS) Size(v Namespace) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.OrganizationId)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.EmbeddingModel)
	size += varint.Int.Size(v.TotalDocuments)
	size += varint.Int.Size(v.TotalIngestJobs)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s namespaceMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var OrganizationMUS = organizationMUS{}

type organizationMUS struct{}

func (s organizationMUS) Marshal(v Organization, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Plan, bs[n:])
	n += varint.Int.Marshal(v.PagesLimit, bs[n:])
	n += varint.Int.Marshal(v.TotalPages, bs[n:])
	n += varint.Int.Marshal(v.TotalDocuments, bs[n:])
	n += varint.Int.Marshal(v.TotalNamespaces, bs[n:])
	n += varint.Int.Marshal(v.TotalIngestJobs, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s organizationMUS) Unmarshal(bs []byte) (v Organization, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Plan, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PagesLimit, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalPages, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalDocuments, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalNamespaces, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TotalIngestJobs, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s organizationMUS) Size(v Organization) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Plan)
	size += varint.Int.Size(v.PagesLimit)
	size += varint.Int.Size(v.TotalPages)
	size += varint.Int.Size(v.TotalDocuments)
	size += varint.Int.Size(v.TotalNamespaces)
	size += varint.Int.Size(v.TotalIngestJobs)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s organizationMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var VectorEntryMUS = vectorEntryMUS{}

type vectorEntryMUS struct{}

func (s vectorEntryMUS) Marshal(v VectorEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += slicefk0oqdXGn7TquΔvYoOKbUwΞΞ.Marshal(v.Vector, bs[n:])
	return n + map4XviE1CYoSWgvVmNlb9AbAΞΞ.Marshal(v.Metadata, bs[n:])
}

func (s vectorEntryMUS) Unmarshal(bs []byte) (v VectorEntry, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Vector, n1, err = slicefk0oqdXGn7TquΔvYoOKbUwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = map4XviE1CYoSWgvVmNlb9AbAΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s vectorEntryMUS) Size(v VectorEntry) (size int) {
	size = ord.String.Size(v.Id)
	size += slicefk0oqdXGn7TquΔvYoOKbUwΞΞ.Size(v.Vector)
	return size + map4XviE1CYoSWgvVmNlb9AbAΞΞ.Size(v.Metadata)
}

func (s vectorEntryMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = slicefk0oqdXGn7TquΔvYoOKbUwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = map4XviE1CYoSWgvVmNlb9AbAΞΞ.Skip(bs[n:])
	n += n1
	return
}

var StepRecordMUS = stepRecordMUS{}

type stepRecordMUS struct{}

func (s stepRecordMUS) Marshal(v StepRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.RunId, bs)
	n += varint.Int.Marshal(v.Seq, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += StepStatusMUS.Marshal(v.Status, bs[n:])
	n += ord.ByteSlice.Marshal(v.Result, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s stepRecordMUS) Unmarshal(bs []byte) (v StepRecord, n int, err error) {
	v.RunId, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Seq, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = StepStatusMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Result, n1, err = ord.ByteSlice.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s stepRecordMUS) Size(v StepRecord) (size int) {
	size = ord.String.Size(v.RunId)
	size += varint.Int.Size(v.Seq)
	size += ord.String.Size(v.Name)
	size += StepStatusMUS.Size(v.Status)
	size += ord.ByteSlice.Size(v.Result)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s stepRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = StepStatusMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.ByteSlice.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var RunRecordMUS = runRecordMUS{}

type runRecordMUS struct{}

func (s runRecordMUS) Marshal(v RunRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Workflow, bs[n:])
	n += ord.ByteSlice.Marshal(v.Payload, bs[n:])
	n += RunStatusMUS.Marshal(v.Status, bs[n:])
	n += ord.String.Marshal(v.Error, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.StartedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.FinishedAt, bs[n:])
}

func (s runRecordMUS) Unmarshal(bs []byte) (v RunRecord, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Workflow, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Payload, n1, err = ord.ByteSlice.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = RunStatusMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Error, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FinishedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s runRecordMUS) Size(v RunRecord) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Workflow)
	size += ord.ByteSlice.Size(v.Payload)
	size += RunStatusMUS.Size(v.Status)
	size += ord.String.Size(v.Error)
	size += raw.TimeUnixMicro.Size(v.StartedAt)
	return size + raw.TimeUnixMicro.Size(v.FinishedAt)
}

func (s runRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.ByteSlice.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = RunStatusMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
