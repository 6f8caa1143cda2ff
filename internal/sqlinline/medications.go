package sqlinline

const QInsertMedication = `--sql 9b1bbc29-f887-4092-90c9-e891bbcb0c4e
INSERT INTO medications (id, patient_id, medication_name, dosage, frequency, duration, instructions, start_date, end_date, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
RETURNING created_at, updated_at;
`

const QGetMedication = `--sql 87f306f2-be74-4ab0-b1e6-ea7ecf21ae62
SELECT id, patient_id, medication_name, dosage, frequency, duration, instructions, start_date, end_date, is_active, created_at, updated_at
FROM medications
WHERE id = $1;
`

const QListMedicationsByPatient = `--sql 33d6fb28-1266-44ce-aa69-fb2337376f4b
SELECT id, patient_id, medication_name, dosage, frequency, duration, instructions, start_date, end_date, is_active, created_at, updated_at
FROM medications
WHERE patient_id = $1
ORDER BY created_at DESC;
`

const QUpdateMedication = `--sql 827d1484-1134-4ff3-8701-12e3ecf1e1f1
UPDATE medications
SET medication_name = COALESCE($2, medication_name),
    dosage          = COALESCE($3, dosage),
    frequency       = COALESCE($4, frequency),
    duration        = COALESCE($5, duration),
    instructions    = COALESCE($6, instructions),
    start_date      = COALESCE($7, start_date),
    end_date        = COALESCE($8, end_date),
    is_active       = COALESCE($9, is_active),
    updated_at      = NOW()
WHERE id = $1;
`

const QDeleteMedication = `--sql e787c6c1-c2bc-4d76-a2b7-08fbf604bd98
DELETE FROM medications
WHERE id = $1;
`
