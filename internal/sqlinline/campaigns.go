package sqlinline

const QInsertCampaign = `--sql 1d3c2b9a-84f1-4f6e-8f0a-6e9e2b7d5a10
insert into campaigns(id, creator, title, description, metadata_uri, goal_amount, donated_amount, deadline, created_at, is_active)
values ($1::text, $2::text, $3::text, $4::text, $5::text, $6::bigint, $7::bigint, $8::timestamptz, $9::timestamptz, $10::boolean);
`

const QGetCampaign = `--sql 7e5a9c44-2d31-4c8b-9b0f-1a4cd8e6f302
select id, creator, title, description, metadata_uri, goal_amount, donated_amount, deadline, created_at, is_active
from campaigns
where id = $1::text;
`

const QGetCampaignForUpdate = `--sql c8d24f6b-9a13-47e0-b5c2-4e87a0d9f153
select id, creator, title, description, metadata_uri, goal_amount, donated_amount, deadline, created_at, is_active
from campaigns
where id = $1::text
for update;
`

const QUpdateCampaign = `--sql b2f8d1c6-5e07-49a3-8d62-93c4a1f7e815
update campaigns
set donated_amount = $2::bigint, is_active = $3::boolean
where id = $1::text;
`

const QDeleteCampaign = `--sql 9a6e4f02-c7b3-4d15-a8e9-5f20d3b1c684
delete from campaigns
where id = $1::text;
`

const QListCampaigns = `--sql e4b7a3d9-16f8-42c5-90ab-7d2e8c5f1b36
select id, creator, title, description, metadata_uri, goal_amount, donated_amount, deadline, created_at, is_active
from campaigns
order by created_at;
`
